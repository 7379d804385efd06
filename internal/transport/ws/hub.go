package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection represents one WebSocket connection's delivery endpoint.
// Send is buffered; writers never block on it, overflow is dropped.
type Connection struct {
	ID   string
	Send chan []byte
}

// Hub tracks live connections and their room membership, and delivers
// events to them. It implements service.Broadcaster. Membership here
// only drives delivery; the room store remains the authoritative
// registry of participant identity.
type Hub struct {
	conns map[string]*Connection
	rooms map[string]map[string]*Connection // roomKey -> connID -> conn
	mu    sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*Connection),
		rooms: make(map[string]map[string]*Connection),
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID] = conn
}

// Unregister removes a connection from the hub and any room it is in,
// and closes its send channel.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.conns[conn.ID]; !ok || existing != conn {
		return
	}
	delete(h.conns, conn.ID)
	for roomKey, members := range h.rooms {
		if _, ok := members[conn.ID]; ok {
			delete(members, conn.ID)
			if len(members) == 0 {
				delete(h.rooms, roomKey)
			}
		}
	}
	close(conn.Send)
}

// JoinRoom adds a connection to a room's delivery set.
func (h *Hub) JoinRoom(connID, roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	if h.rooms[roomKey] == nil {
		h.rooms[roomKey] = make(map[string]*Connection)
	}
	h.rooms[roomKey][connID] = conn
}

// LeaveRoom removes a connection from a room's delivery set.
func (h *Hub) LeaveRoom(connID, roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomKey]
	if !ok {
		return
	}
	delete(members, connID)
	if len(members) == 0 {
		delete(h.rooms, roomKey)
	}
}

// BroadcastToRoom sends an event to every connection in the room
// (implements service.Broadcaster)
func (h *Hub) BroadcastToRoom(roomKey string, event string, payload interface{}) {
	h.broadcast(roomKey, "", event, payload)
}

// BroadcastToOthers sends an event to every connection in the room
// except the excluded one (implements service.Broadcaster)
func (h *Hub) BroadcastToOthers(roomKey, excludeConnID string, event string, payload interface{}) {
	h.broadcast(roomKey, excludeConnID, event, payload)
}

// SendToConnection sends an event to a single connection (implements
// service.Broadcaster)
func (h *Hub) SendToConnection(connID string, event string, payload interface{}) {
	data, err := marshalMessage(event, payload)
	if err != nil {
		log.Printf("ws: failed to marshal %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.conns[connID]
	if !ok {
		return
	}
	h.deliver(conn, data, event)
}

func (h *Hub) broadcast(roomKey, excludeConnID, event string, payload interface{}) {
	data, err := marshalMessage(event, payload)
	if err != nil {
		log.Printf("ws: failed to marshal %s: %v", event, err)
		return
	}

	// Deliveries stay under the read lock: Unregister closes Send under
	// the write lock, so a send can never hit a closed channel. The
	// sends are non-blocking, the lock is never held across a wait.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID, conn := range h.rooms[roomKey] {
		if connID == excludeConnID {
			continue
		}
		h.deliver(conn, data, event)
	}
}

func (h *Hub) deliver(conn *Connection, data []byte, event string) {
	select {
	case conn.Send <- data:
	default:
		// Buffer full: drop rather than block the broadcaster
		log.Printf("ws: dropping %s for connection %s, buffer full", event, conn.ID)
	}
}

func marshalMessage(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: event, Payload: data})
}
