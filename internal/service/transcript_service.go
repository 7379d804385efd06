package service

import (
	"strings"
	"time"

	"holomeet/internal/model"
	"holomeet/internal/store"
)

// InterimText is the wire shape for non-final speech previews.
type InterimText struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}

// TranscriptService collects finalized speech segments per room. The
// transcription provider lives outside this server; it only feeds text
// in. Segments are immutable and ordered by insertion, not timestamp.
type TranscriptService struct {
	store       *store.RoomStore
	broadcaster Broadcaster
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(st *store.RoomStore) *TranscriptService {
	return &TranscriptService{store: st}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *TranscriptService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AppendSegment stamps and appends a finalized segment, then broadcasts
// it to the whole room including the speaker's own connections, which
// must not echo locally before this broadcast arrives. Whitespace-only
// text is silently dropped.
func (s *TranscriptService) AppendSegment(roomKey, userID, name, text string) (*model.TranscriptSegment, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	seg := model.TranscriptSegment{
		UserID:    userID,
		Name:      name,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.store.AppendSegment(roomKey, seg)
	s.broadcaster.BroadcastToRoom(roomKey, "transcript-segment", seg)
	return &seg, true
}

// RelayInterim forwards a non-final "still speaking" preview to the
// other connections in the room. Never persisted.
func (s *TranscriptService) RelayInterim(senderConnID, roomKey, userID, name, text string) {
	s.broadcaster.BroadcastToOthers(roomKey, senderConnID, "transcript-interim", &InterimText{
		UserID: userID,
		Name:   name,
		Text:   text,
	})
}

// Snapshot returns the full segment list for one resyncing connection.
func (s *TranscriptService) Snapshot(roomKey string) []model.TranscriptSegment {
	return s.store.TranscriptSnapshot(roomKey)
}

// FullText flattens the room's transcript into one string, in
// insertion order.
func (s *TranscriptService) FullText(roomKey string) string {
	segs := s.store.TranscriptSnapshot(roomKey)
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}
