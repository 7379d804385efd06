package model

import "time"

// Meeting event kinds
const (
	EventVoice = "voice"
	EventChat  = "chat"
)

// MeetingEvent is one entry in the merged chronological record of a
// meeting, tagged with its origin.
type MeetingEvent struct {
	Kind      string    `json:"kind" bson:"kind"`
	UserID    string    `json:"userId" bson:"userId"`
	Name      string    `json:"name" bson:"name"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"ts" bson:"ts"`
}

// MeetingParticipant is a roster entry derived from the merged events:
// unique user id with its last-seen display name.
type MeetingParticipant struct {
	UserID string `json:"userId" bson:"userId"`
	Name   string `json:"name" bson:"name"`
}

// MeetingRecord is the durable, immutable archive of one meeting,
// persisted once per end-meeting trigger and keyed by Handle.
type MeetingRecord struct {
	Handle         string               `json:"handle" bson:"handle"`
	RoomKey        string               `json:"roomKey" bson:"roomKey"`
	StartedAt      time.Time            `json:"startedAt" bson:"startedAt"`
	EndedAt        time.Time            `json:"endedAt" bson:"endedAt"`
	Participants   []MeetingParticipant `json:"participants" bson:"participants"`
	Events         []MeetingEvent       `json:"events" bson:"events"`
	TranscriptText string               `json:"transcriptText" bson:"transcriptText"`
}

// ArchiveHandle is a listing entry for persisted meeting records.
type ArchiveHandle struct {
	Handle  string    `json:"handle" bson:"handle"`
	RoomKey string    `json:"roomKey" bson:"roomKey"`
	EndedAt time.Time `json:"endedAt" bson:"endedAt"`
}
