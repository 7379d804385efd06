package model

import "time"

// Attachment is a file shared alongside a chat message. Data is an
// opaque payload reference (typically a data URL or object key); the
// server never inspects it.
type Attachment struct {
	Name string `json:"name" bson:"name"`
	Mime string `json:"mime" bson:"mime"`
	Data string `json:"data" bson:"data"`
}

// ChatMessage is one entry in a room's chat log. CorrelationID is
// client-supplied and only echoed back so the sender can suppress its
// own broadcast; the server does not deduplicate on it.
type ChatMessage struct {
	UserID        string       `json:"userId" bson:"userId"`
	Name          string       `json:"name" bson:"name"`
	Text          string       `json:"text,omitempty" bson:"text,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Timestamp     time.Time    `json:"ts" bson:"ts"`
	CorrelationID string       `json:"cid,omitempty" bson:"cid,omitempty"`
}
