package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"holomeet/internal/model"
	"holomeet/internal/service"
)

// Services groups everything the event dispatcher can reach.
type Services struct {
	Rooms       *service.RoomService
	Signals     *service.SignalService
	Whiteboard  *service.WhiteboardService
	Documents   *service.DocumentService
	Transcripts *service.TranscriptService
	Chat        *service.ChatService
	Archives    *service.ArchiveService
}

// session is the per-connection state machine: Unjoined until a
// successful join-room, Joined(roomKey) afterwards, Closed on
// transport close. The source kept this state in closure variables;
// here it is explicit and mutated only by handleJoin and close.
type session struct {
	conn    *Connection
	hub     *Hub
	svc     *Services
	joined  bool
	roomKey string
}

func newSession(conn *Connection, hub *Hub, svc *Services) *session {
	return &session{
		conn: conn,
		hub:  hub,
		svc:  svc,
	}
}

// handleEvent routes one inbound event. Every failure mode inside is a
// logged no-op: no event may terminate the connection.
func (s *session) handleEvent(event string, payload json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ws: recovered from %s handler: %v", event, r)
		}
	}()

	if event == "join-room" {
		s.handleJoin(payload)
		return
	}

	// Everything else requires a joined connection.
	if !s.joined {
		return
	}

	switch event {
	case "presence-update":
		var p presencePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		s.svc.Rooms.UpdatePresence(context.Background(), s.conn.ID, s.roomKey, p.Mic, p.Cam)

	case "avatar-update":
		var p avatarPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		s.svc.Rooms.UpdateAvatar(s.conn.ID, s.roomKey, p.Avatar)

	case "signal":
		var p signalPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		s.svc.Signals.Relay(s.conn.ID, s.roomKey, p.TargetUserID, p.Payload)

	case "whiteboard-stroke":
		var p strokePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		s.svc.Whiteboard.AppendStroke(s.conn.ID, s.roomKey, p.Tool, p.Color, p.Size, p.Points)

	case "whiteboard-fill":
		var p fillPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		s.svc.Whiteboard.AppendFill(s.conn.ID, s.roomKey, p.X, p.Y, p.Color)

	case "whiteboard-clear":
		s.svc.Whiteboard.Clear(s.roomKey)

	case "whiteboard-resync":
		s.hub.SendToConnection(s.conn.ID, "whiteboard-state", &boardState{
			Actions: s.svc.Whiteboard.Snapshot(s.roomKey),
		})

	case "doc-resync":
		s.hub.SendToConnection(s.conn.ID, "doc-state", &service.DocText{
			Text: s.svc.Documents.GetText(s.roomKey),
		})

	case "doc-update":
		var p textPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		s.svc.Documents.SetText(s.conn.ID, s.roomKey, p.Text)

	case "transcript-segment":
		var p textPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		speaker, ok := s.svc.Rooms.Participant(s.roomKey, s.conn.ID)
		if !ok {
			return
		}
		s.svc.Transcripts.AppendSegment(s.roomKey, speaker.UserID, speaker.Name, p.Text)

	case "transcript-interim":
		var p textPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		speaker, ok := s.svc.Rooms.Participant(s.roomKey, s.conn.ID)
		if !ok {
			return
		}
		s.svc.Transcripts.RelayInterim(s.conn.ID, s.roomKey, speaker.UserID, speaker.Name, p.Text)

	case "transcript-resync":
		s.hub.SendToConnection(s.conn.ID, "transcript-state", &transcriptState{
			Segments: s.svc.Transcripts.Snapshot(s.roomKey),
		})

	case "chat-send":
		var p chatPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		sender, ok := s.svc.Rooms.Participant(s.roomKey, s.conn.ID)
		if !ok {
			return
		}
		s.svc.Chat.Post(s.roomKey, sender.UserID, sender.Name, p.Text, p.Attachments, p.CorrelationID)

	case "pose-update":
		s.hub.BroadcastToOthers(s.roomKey, s.conn.ID, "pose-update", payload)

	case "cursor-update":
		s.hub.BroadcastToOthers(s.roomKey, s.conn.ID, "cursor-update", payload)

	case "end-meeting":
		s.handleEndMeeting()

	case "list-archives":
		s.handleListArchives(payload)

	case "get-archive":
		s.handleGetArchive(payload)

	default:
		log.Printf("ws: unknown event type: %s", event)
	}
}

func (s *session) handleJoin(payload json.RawMessage) {
	var p joinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	if p.RoomKey == "" || p.UserID == "" {
		return
	}

	// Re-joining is an implicit leave of the current room, whether the
	// target is a different room or the same one. Without the leave a
	// same-room rejoin would register the connection twice and strand
	// a ghost roster entry on close.
	if s.joined {
		s.leave()
	}

	s.hub.JoinRoom(s.conn.ID, p.RoomKey)
	ok := s.svc.Rooms.Join(context.Background(), s.conn.ID, p.RoomKey, model.Participant{
		UserID: p.UserID,
		Name:   p.Name,
		Avatar: p.Avatar,
	})
	if !ok {
		s.hub.LeaveRoom(s.conn.ID, p.RoomKey)
		return
	}

	s.joined = true
	s.roomKey = p.RoomKey
}

func (s *session) handleEndMeeting() {
	record, err := s.svc.Archives.Archive(context.Background(), s.roomKey)
	if err != nil {
		log.Printf("ws: archive failed for room %s: %v", s.roomKey, err)
		s.hub.SendToConnection(s.conn.ID, "archive-ready", &archiveReady{OK: false})
		return
	}
	s.hub.SendToConnection(s.conn.ID, "archive-ready", &archiveReady{
		OK:             true,
		Handle:         record.Handle,
		TranscriptText: record.TranscriptText,
	})
}

func (s *session) handleListArchives(payload json.RawMessage) {
	var p archiveListPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	roomKey := p.RoomKey
	if roomKey == "" {
		roomKey = s.roomKey
	}

	handles, err := s.svc.Archives.List(context.Background(), roomKey)
	if err != nil {
		log.Printf("ws: listing archives for room %s: %v", roomKey, err)
		s.hub.SendToConnection(s.conn.ID, "archive-error", &errorPayload{Error: "failed to list archives"})
		return
	}
	s.hub.SendToConnection(s.conn.ID, "archive-list", &archiveList{
		RoomKey:  roomKey,
		Archives: handles,
	})
}

func (s *session) handleGetArchive(payload json.RawMessage) {
	var p archiveGetPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return
	}
	roomKey := p.RoomKey
	if roomKey == "" {
		roomKey = s.roomKey
	}

	record, err := s.svc.Archives.Get(context.Background(), roomKey, p.Handle)
	if errors.Is(err, service.ErrArchiveNotFound) {
		s.hub.SendToConnection(s.conn.ID, "archive-error", &errorPayload{Error: "archive not found"})
		return
	}
	if err != nil {
		log.Printf("ws: fetching archive %s: %v", p.Handle, err)
		s.hub.SendToConnection(s.conn.ID, "archive-error", &errorPayload{Error: "failed to fetch archive"})
		return
	}
	s.hub.SendToConnection(s.conn.ID, "archive-record", record)
}

// leave detaches the session from its current room, broadcasting
// participant-left exactly once. Hub membership is dropped first so
// the departing connection does not receive its own departure.
func (s *session) leave() {
	if !s.joined {
		return
	}
	s.hub.LeaveRoom(s.conn.ID, s.roomKey)
	s.svc.Rooms.Leave(context.Background(), s.conn.ID, s.roomKey)
	s.joined = false
	s.roomKey = ""
}

// close is the terminal transition, invoked on transport close.
func (s *session) close() {
	s.leave()
}
