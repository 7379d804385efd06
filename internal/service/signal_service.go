package service

import "encoding/json"

// SignalDelivery is what the target connection receives: the sender's
// user id and the untouched signaling payload.
type SignalDelivery struct {
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

// SignalService forwards opaque WebRTC signaling payloads (SDP offers,
// answers, ICE candidates) between two participants in the same room.
// It never inspects the payload and retains no state between calls.
type SignalService struct {
	rooms       *RoomService
	broadcaster Broadcaster
}

// NewSignalService creates a new signal service
func NewSignalService(rooms *RoomService) *SignalService {
	return &SignalService{rooms: rooms}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *SignalService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Relay delivers a signaling payload from the sender to the named
// target. Unresolvable targets are silently dropped; WebRTC clients
// retry and time out on their own.
func (s *SignalService) Relay(senderConnID, roomKey, targetUserID string, payload json.RawMessage) {
	sender, ok := s.rooms.Participant(roomKey, senderConnID)
	if !ok {
		return
	}

	targetConnID, ok := s.rooms.ResolveConnection(roomKey, targetUserID)
	if !ok {
		return
	}

	s.broadcaster.SendToConnection(targetConnID, "signal", &SignalDelivery{
		From:    sender.UserID,
		Payload: payload,
	})
}
