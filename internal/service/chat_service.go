package service

import (
	"time"

	"holomeet/internal/model"
	"holomeet/internal/store"
)

// ChatService maintains the per-room chat log. Every accepted message
// is broadcast to the whole room including the sender; the sender's
// client suppresses its own echo via the correlation id it supplied,
// the server never deduplicates.
type ChatService struct {
	store       *store.RoomStore
	broadcaster Broadcaster
}

// NewChatService creates a new chat service
func NewChatService(st *store.RoomStore) *ChatService {
	return &ChatService{store: st}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *ChatService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Post appends a message and broadcasts it to the whole room. A
// message with neither text nor attachments is rejected: not stored,
// not broadcast.
func (s *ChatService) Post(roomKey, userID, name, text string, attachments []model.Attachment, correlationID string) (*model.ChatMessage, bool) {
	if text == "" && len(attachments) == 0 {
		return nil, false
	}

	msg := model.ChatMessage{
		UserID:        userID,
		Name:          name,
		Text:          text,
		Attachments:   attachments,
		Timestamp:     time.Now(),
		CorrelationID: correlationID,
	}
	s.store.AppendChat(roomKey, msg)
	s.broadcaster.BroadcastToRoom(roomKey, "chat-message", msg)
	return &msg, true
}

// Snapshot returns the full message list for one resyncing connection.
func (s *ChatService) Snapshot(roomKey string) []model.ChatMessage {
	return s.store.ChatSnapshot(roomKey)
}
