package service

import "sync"

// recordedEvent is one delivery captured by fakeBroadcaster.
type recordedEvent struct {
	Kind    string // "room", "others" or "conn"
	RoomKey string
	Exclude string
	ConnID  string
	Event   string
	Payload interface{}
}

// fakeBroadcaster records deliveries instead of pushing them to
// WebSocket connections.
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{}
}

func (f *fakeBroadcaster) BroadcastToRoom(roomKey string, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Kind: "room", RoomKey: roomKey, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) BroadcastToOthers(roomKey, excludeConnID string, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Kind: "others", RoomKey: roomKey, Exclude: excludeConnID, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) SendToConnection(connID string, event string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Kind: "conn", ConnID: connID, Event: event, Payload: payload})
}

// byEvent returns the recorded deliveries of one event type.
func (f *fakeBroadcaster) byEvent(event string) []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedEvent
	for _, e := range f.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}
