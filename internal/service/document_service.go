package service

import "holomeet/internal/store"

// DocText is the wire shape for shared document updates.
type DocText struct {
	Text string `json:"text"`
}

// DocumentService holds the per-room shared document: a single text
// blob, last write wins. Every update fully replaces the text. No
// merging and no operational transform: a writer always overwrites a
// concurrently-typing peer, which is the intended tradeoff, not a bug.
type DocumentService struct {
	store       *store.RoomStore
	broadcaster Broadcaster
}

// NewDocumentService creates a new document service
func NewDocumentService(st *store.RoomStore) *DocumentService {
	return &DocumentService{store: st}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *DocumentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GetText returns the room's current document text, empty by default.
func (s *DocumentService) GetText(roomKey string) string {
	return s.store.DocText(roomKey)
}

// SetText replaces the document text and broadcasts the new text to
// everyone except the writer.
func (s *DocumentService) SetText(senderConnID, roomKey, text string) {
	s.store.SetDocText(roomKey, text)
	s.broadcaster.BroadcastToOthers(roomKey, senderConnID, "doc-update", &DocText{Text: text})
}
