package service

import (
	"math"

	"holomeet/internal/model"
	"holomeet/internal/store"
)

// WhiteboardService maintains the per-room append-only drawing log.
// Arrival order at the server is the canonical replay order; Clear is
// the only operation that removes anything.
type WhiteboardService struct {
	store       *store.RoomStore
	broadcaster Broadcaster
}

// NewWhiteboardService creates a new whiteboard service
func NewWhiteboardService(st *store.RoomStore) *WhiteboardService {
	return &WhiteboardService{store: st}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *WhiteboardService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AppendStroke appends a stroke action and broadcasts it to everyone
// except the sender, who already has it locally. Strokes without
// points are silently dropped.
func (s *WhiteboardService) AppendStroke(senderConnID, roomKey, tool, color string, size float64, points []model.Point) {
	if len(points) == 0 {
		return
	}
	if tool == "" {
		tool = "pencil"
	}

	act := model.WhiteboardAction{
		Type:   model.ActionStroke,
		Tool:   tool,
		Color:  color,
		Size:   size,
		Points: points,
	}
	s.store.AppendAction(roomKey, act)
	s.broadcaster.BroadcastToOthers(roomKey, senderConnID, "whiteboard-stroke", act)
}

// AppendFill appends a fill action and broadcasts it to everyone except
// the sender. Non-finite coordinates are silently dropped.
func (s *WhiteboardService) AppendFill(senderConnID, roomKey string, x, y float64, color string) {
	if !isFinite(x) || !isFinite(y) {
		return
	}

	act := model.WhiteboardAction{
		Type:  model.ActionFill,
		Color: color,
		X:     x,
		Y:     y,
	}
	s.store.AppendAction(roomKey, act)
	s.broadcaster.BroadcastToOthers(roomKey, senderConnID, "whiteboard-fill", act)
}

// Clear truncates the room's action log and notifies the entire room,
// sender included, so every client resets its local canvas.
func (s *WhiteboardService) Clear(roomKey string) {
	s.store.ClearBoard(roomKey)
	s.broadcaster.BroadcastToRoom(roomKey, "whiteboard-clear", struct{}{})
}

// Snapshot returns the full action log for one resyncing connection.
// Empty, never an error, for rooms with no actions yet.
func (s *WhiteboardService) Snapshot(roomKey string) []model.WhiteboardAction {
	return s.store.BoardSnapshot(roomKey)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
