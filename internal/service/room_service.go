package service

import (
	"context"
	"log"

	"holomeet/internal/cache"
	"holomeet/internal/model"
	"holomeet/internal/store"
)

// RosterSnapshot is sent to a joining connection only: the full current
// roster (including the joiner) plus the room's media-presence state.
type RosterSnapshot struct {
	Participants []model.Participant       `json:"participants"`
	Presence     map[string]model.Presence `json:"presence"`
}

// PresenceUpdate is broadcast to the whole room when a participant's
// media flags change.
type PresenceUpdate struct {
	UserID string `json:"userId"`
	Mic    bool   `json:"mic"`
	Cam    bool   `json:"cam"`
}

// RoomService is the authoritative room registry: who is in which room,
// under which identity, with which media flags. Identity is trusted as
// declared by the client.
type RoomService struct {
	store       *store.RoomStore
	presence    cache.PresenceCache
	broadcaster Broadcaster
}

// NewRoomService creates a new room service
func NewRoomService(st *store.RoomStore, presence cache.PresenceCache) *RoomService {
	return &RoomService{
		store:    st,
		presence: presence,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *RoomService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Join registers a connection as a room member. It broadcasts
// participant-joined to the existing members and replies to the joiner
// with the full roster and presence snapshot. Returns false when the
// room key or user id is empty; nothing happens in that case.
func (s *RoomService) Join(ctx context.Context, connID, roomKey string, p model.Participant) bool {
	if roomKey == "" || p.UserID == "" {
		return false
	}

	roster, presence := s.store.AddMember(roomKey, connID, p)

	s.broadcaster.BroadcastToOthers(roomKey, connID, "participant-joined", p)
	s.broadcaster.SendToConnection(connID, "presence-snapshot", &RosterSnapshot{
		Participants: roster,
		Presence:     presence,
	})

	s.mirrorPresence(ctx, roomKey, p.UserID, p.Name, model.Presence{})
	return true
}

// UpdatePresence overwrites a member's media flags and broadcasts the
// update to the whole room, sender included.
func (s *RoomService) UpdatePresence(ctx context.Context, connID, roomKey string, mic, cam bool) {
	p, ok := s.store.MemberByConn(roomKey, connID)
	if !ok {
		return
	}

	s.store.SetPresence(roomKey, p.UserID, model.Presence{Mic: mic, Cam: cam})
	s.broadcaster.BroadcastToRoom(roomKey, "presence-update", &PresenceUpdate{
		UserID: p.UserID,
		Mic:    mic,
		Cam:    cam,
	})

	s.mirrorPresence(ctx, roomKey, p.UserID, p.Name, model.Presence{Mic: mic, Cam: cam})
}

// UpdateAvatar mutates a member's avatar and broadcasts the full
// updated identity to the whole room, sender included.
func (s *RoomService) UpdateAvatar(connID, roomKey string, avatar model.Avatar) {
	if avatar.Kind == "" && avatar.Value == "" {
		return
	}

	p, ok := s.store.UpdateAvatar(roomKey, connID, avatar)
	if !ok {
		return
	}
	s.broadcaster.BroadcastToRoom(roomKey, "participant-updated", p)
}

// Leave removes a connection from its room and broadcasts
// participant-left with its last-known identity. Idempotent: a second
// call for the same connection is a no-op.
func (s *RoomService) Leave(ctx context.Context, connID, roomKey string) {
	p, ok := s.store.RemoveMember(roomKey, connID)
	if !ok {
		return
	}

	s.broadcaster.BroadcastToRoom(roomKey, "participant-left", p)

	if s.presence != nil {
		if err := s.presence.RemoveUser(ctx, roomKey, p.UserID); err != nil {
			log.Printf("presence cache: failed to remove %s from room %s: %v", p.UserID, roomKey, err)
		}
	}
}

// ResolveConnection maps an application-level user id to its transport
// connection. First match in join order wins when duplicates exist.
func (s *RoomService) ResolveConnection(roomKey, userID string) (string, bool) {
	return s.store.ResolveUser(roomKey, userID)
}

// Participant returns the identity bound to a connection.
func (s *RoomService) Participant(roomKey, connID string) (model.Participant, bool) {
	return s.store.MemberByConn(roomKey, connID)
}

// mirrorPresence pushes a best-effort copy of live presence into Redis
// for the room preview endpoint. The in-memory store stays
// authoritative; failures are logged and ignored.
func (s *RoomService) mirrorPresence(ctx context.Context, roomKey, userID, name string, p model.Presence) {
	if s.presence == nil {
		return
	}
	err := s.presence.SetUser(ctx, roomKey, &cache.RoomPresence{
		UserID: userID,
		Name:   name,
		Mic:    p.Mic,
		Cam:    p.Cam,
	})
	if err != nil {
		log.Printf("presence cache: failed to mirror %s in room %s: %v", userID, roomKey, err)
	}
}
