package store

import (
	"fmt"
	"sync"
	"testing"

	"holomeet/internal/model"
)

func TestAddMemberReturnsFullRoster(t *testing.T) {
	s := NewRoomStore()

	roster, _ := s.AddMember("room-a", "conn-1", model.Participant{UserID: "u1"})
	if len(roster) != 1 || roster[0].UserID != "u1" {
		t.Errorf("roster = %+v", roster)
	}

	s.SetPresence("room-a", "u1", model.Presence{Mic: true})
	roster, presence := s.AddMember("room-a", "conn-2", model.Participant{UserID: "u2"})
	if len(roster) != 2 {
		t.Errorf("roster = %+v, want both members", roster)
	}
	if p, ok := presence["u1"]; !ok || !p.Mic {
		t.Errorf("presence snapshot = %+v, missing u1's flags", presence)
	}
}

func TestRemoveMemberSecondCallFails(t *testing.T) {
	s := NewRoomStore()
	s.AddMember("room-a", "conn-1", model.Participant{UserID: "u1", Name: "Alice"})

	p, ok := s.RemoveMember("room-a", "conn-1")
	if !ok || p.Name != "Alice" {
		t.Errorf("RemoveMember = %+v, %v", p, ok)
	}
	if _, ok := s.RemoveMember("room-a", "conn-1"); ok {
		t.Error("second remove reported success")
	}
}

func TestResolveUserJoinOrder(t *testing.T) {
	s := NewRoomStore()
	s.AddMember("room-a", "conn-1", model.Participant{UserID: "dup"})
	s.AddMember("room-a", "conn-2", model.Participant{UserID: "dup"})

	if connID, _ := s.ResolveUser("room-a", "dup"); connID != "conn-1" {
		t.Errorf("ResolveUser = %q, want earliest join", connID)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := NewRoomStore()
	s.AppendAction("room-a", model.WhiteboardAction{Type: model.ActionFill, X: 1, Y: 1})

	snap := s.BoardSnapshot("room-a")
	snap[0].X = 99

	if got := s.BoardSnapshot("room-a")[0].X; got != 1 {
		t.Errorf("mutating a snapshot leaked into the store: X = %v", got)
	}
}

func TestConcurrentRoomAccess(t *testing.T) {
	s := NewRoomStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room := fmt.Sprintf("room-%d", i%5)
			connID := fmt.Sprintf("conn-%d", i)
			s.AddMember(room, connID, model.Participant{UserID: connID})
			s.AppendAction(room, model.WhiteboardAction{Type: model.ActionStroke, Points: []model.Point{{0, 0}}})
			s.SetDocText(room, "text")
			s.RemoveMember(room, connID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 5; i++ {
		room := fmt.Sprintf("room-%d", i)
		if got := len(s.BoardSnapshot(room)); got != 10 {
			t.Errorf("%s board length = %d, want 10", room, got)
		}
	}
}
