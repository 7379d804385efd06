package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // whiteboard strokes and attachments get large
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub *Hub
	svc *Services
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, svc *Services) *Handler {
	return &Handler{
		hub: hub,
		svc: svc,
	}
}

// Serve handles GET /v1/ws. The connection starts unjoined; the client
// binds it to a room and identity with a join-room event.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ID:   uuid.New().String(),
		Send: make(chan []byte, sendBufferSize),
	}
	h.hub.Register(conn)
	sess := newSession(conn, h.hub, h.svc)

	log.Printf("Connection %s established", conn.ID)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, sess)
}

func (h *Handler) readPump(wsConn *websocket.Conn, sess *session) {
	defer func() {
		sess.close()
		h.hub.Unregister(sess.conn)
		wsConn.Close()
		log.Printf("Connection %s closed", sess.conn.ID)
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("ws: failed to parse message from %s: %v", sess.conn.ID, err)
			continue
		}
		sess.handleEvent(msg.Type, msg.Payload)
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
