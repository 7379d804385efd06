package service

// Broadcaster interface for WebSocket delivery (avoids import cycle).
// Implemented by the ws Hub. Delivery is fire-and-forget: a slow
// receiver never blocks the caller and overflow is dropped by the
// transport.
type Broadcaster interface {
	BroadcastToRoom(roomKey string, event string, payload interface{})
	BroadcastToOthers(roomKey, excludeConnID string, event string, payload interface{})
	SendToConnection(connID string, event string, payload interface{})
}
