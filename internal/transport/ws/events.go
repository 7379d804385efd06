package ws

import (
	"encoding/json"

	"holomeet/internal/model"
)

// Inbound payload shapes, validated at the boundary before dispatch.
// Anything that fails to decode maps to the silently-ignored invalid
// input class.

type joinRoomPayload struct {
	RoomKey string       `json:"roomKey"`
	UserID  string       `json:"userId"`
	Name    string       `json:"name"`
	Avatar  model.Avatar `json:"avatar"`
}

type presencePayload struct {
	Mic bool `json:"mic"`
	Cam bool `json:"cam"`
}

type avatarPayload struct {
	Avatar model.Avatar `json:"avatar"`
}

type signalPayload struct {
	TargetUserID string          `json:"targetUserId"`
	Payload      json.RawMessage `json:"payload"`
}

type strokePayload struct {
	Tool   string        `json:"tool"`
	Color  string        `json:"color"`
	Size   float64       `json:"size"`
	Points []model.Point `json:"points"`
}

type fillPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

type textPayload struct {
	Text string `json:"text"`
}

type chatPayload struct {
	Text          string             `json:"text"`
	Attachments   []model.Attachment `json:"attachments"`
	CorrelationID string             `json:"correlationId"`
}

type archiveListPayload struct {
	RoomKey string `json:"roomKey"`
}

type archiveGetPayload struct {
	RoomKey string `json:"roomKey"`
	Handle  string `json:"handle"`
}

// Reply shapes for requests that answer the sender directly.

type boardState struct {
	Actions []model.WhiteboardAction `json:"actions"`
}

type transcriptState struct {
	Segments []model.TranscriptSegment `json:"segments"`
}

type archiveReady struct {
	OK             bool   `json:"ok"`
	Handle         string `json:"handle,omitempty"`
	TranscriptText string `json:"transcriptText,omitempty"`
}

type archiveList struct {
	RoomKey  string                `json:"roomKey"`
	Archives []model.ArchiveHandle `json:"archives"`
}

type errorPayload struct {
	Error string `json:"error"`
}
