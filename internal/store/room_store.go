package store

import (
	"sync"

	"holomeet/internal/model"
)

// Member binds a transport connection to its declared participant
// identity within one room.
type Member struct {
	ConnID      string
	Participant model.Participant
}

// roomState is everything one room owns. All fields are guarded by mu;
// mutations never happen outside a RoomStore method.
type roomState struct {
	mu       sync.Mutex
	members  []*Member // join order, first-match resolution depends on it
	presence map[string]model.Presence
	board    []model.WhiteboardAction
	docText  string
	chat     []model.ChatMessage
	segments []model.TranscriptSegment
}

// RoomStore is the authoritative in-memory state for all rooms,
// constructed once at startup and handed to every service. Rooms are
// created lazily on first touch and kept for the process lifetime;
// per-room locking is the serialization boundary, there is no global
// lock across rooms.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*roomState
}

// NewRoomStore creates an empty room store.
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*roomState),
	}
}

func (s *RoomStore) room(key string) *roomState {
	s.mu.RLock()
	r, ok := s.rooms[key]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[key]; ok {
		return r
	}
	r = &roomState{
		presence: make(map[string]model.Presence),
		board:    []model.WhiteboardAction{},
	}
	s.rooms[key] = r
	return r
}

// AddMember registers a connection as a room member and returns the
// full roster (including the new member) plus the current presence
// snapshot.
func (s *RoomStore) AddMember(roomKey, connID string, p model.Participant) ([]model.Participant, map[string]model.Presence) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members = append(r.members, &Member{ConnID: connID, Participant: p})

	roster := make([]model.Participant, 0, len(r.members))
	for _, m := range r.members {
		roster = append(roster, m.Participant)
	}
	presence := make(map[string]model.Presence, len(r.presence))
	for id, pr := range r.presence {
		presence[id] = pr
	}
	return roster, presence
}

// RemoveMember drops a connection from the roster and its presence
// entry, returning the last-known identity. ok is false when the
// connection was not a member, which callers treat as a no-op.
func (s *RoomStore) RemoveMember(roomKey, connID string) (model.Participant, bool) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.members {
		if m.ConnID == connID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			delete(r.presence, m.Participant.UserID)
			return m.Participant, true
		}
	}
	return model.Participant{}, false
}

// MemberByConn returns the participant bound to a connection.
func (s *RoomStore) MemberByConn(roomKey, connID string) (model.Participant, bool) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.ConnID == connID {
			return m.Participant, true
		}
	}
	return model.Participant{}, false
}

// UpdateAvatar mutates a member's avatar and returns the updated
// identity.
func (s *RoomStore) UpdateAvatar(roomKey, connID string, avatar model.Avatar) (model.Participant, bool) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.ConnID == connID {
			m.Participant.Avatar = avatar
			return m.Participant, true
		}
	}
	return model.Participant{}, false
}

// ResolveUser finds the connection for an application-level user id.
// A room may contain two connections claiming the same user id; the
// first match in join order wins.
func (s *RoomStore) ResolveUser(roomKey, userID string) (string, bool) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.Participant.UserID == userID {
			return m.ConnID, true
		}
	}
	return "", false
}

// SetPresence overwrites a user's media flags.
func (s *RoomStore) SetPresence(roomKey, userID string, p model.Presence) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presence[userID] = p
}

// PresenceSnapshot returns a copy of the room's presence map.
func (s *RoomStore) PresenceSnapshot(roomKey string) map[string]model.Presence {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]model.Presence, len(r.presence))
	for id, p := range r.presence {
		out[id] = p
	}
	return out
}

// AppendAction appends a whiteboard action to the room's log.
func (s *RoomStore) AppendAction(roomKey string, act model.WhiteboardAction) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = append(r.board, act)
}

// ClearBoard truncates the room's whiteboard log.
func (s *RoomStore) ClearBoard(roomKey string) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board = []model.WhiteboardAction{}
}

// BoardSnapshot returns a copy of the whiteboard log in append order.
// Empty, never nil, for rooms with no actions yet.
func (s *RoomStore) BoardSnapshot(roomKey string) []model.WhiteboardAction {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.WhiteboardAction, len(r.board))
	copy(out, r.board)
	return out
}

// DocText returns the room's shared document text.
func (s *RoomStore) DocText(roomKey string) string {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docText
}

// SetDocText fully replaces the room's shared document text.
func (s *RoomStore) SetDocText(roomKey, text string) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docText = text
}

// AppendChat appends a chat message to the room's log.
func (s *RoomStore) AppendChat(roomKey string, msg model.ChatMessage) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chat = append(r.chat, msg)
}

// ChatSnapshot returns a copy of the chat log in append order.
func (s *RoomStore) ChatSnapshot(roomKey string) []model.ChatMessage {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.ChatMessage, len(r.chat))
	copy(out, r.chat)
	return out
}

// AppendSegment appends a finalized transcript segment.
func (s *RoomStore) AppendSegment(roomKey string, seg model.TranscriptSegment) {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, seg)
}

// TranscriptSnapshot returns a copy of the transcript in append order.
func (s *RoomStore) TranscriptSnapshot(roomKey string) []model.TranscriptSegment {
	r := s.room(roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.TranscriptSegment, len(r.segments))
	copy(out, r.segments)
	return out
}
