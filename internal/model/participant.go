package model

// Avatar describes how a participant is rendered by clients.
// Kind is "image" or "model" with Value carrying the reference.
type Avatar struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Participant is the application-level identity bound to a connection
// once it has joined a room. Identity is client-declared; the server
// does not verify it against the login service.
type Participant struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar Avatar `json:"avatar"`
}

// Presence holds a participant's last-known media flags.
type Presence struct {
	Mic bool `json:"mic"`
	Cam bool `json:"cam"`
}
