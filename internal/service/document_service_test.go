package service

import (
	"testing"

	"holomeet/internal/store"
)

func newDocFixture() (*DocumentService, *fakeBroadcaster) {
	svc := NewDocumentService(store.NewRoomStore())
	b := newFakeBroadcaster()
	svc.SetBroadcaster(b)
	return svc, b
}

func TestDocumentLastWriteWins(t *testing.T) {
	svc, _ := newDocFixture()

	svc.SetText("conn-1", "room-a", "first draft")
	svc.SetText("conn-2", "room-a", "second draft")

	if got := svc.GetText("room-a"); got != "second draft" {
		t.Errorf("GetText = %q, want the last write", got)
	}
}

func TestDocumentUpdateSkipsSender(t *testing.T) {
	svc, b := newDocFixture()

	svc.SetText("conn-1", "room-a", "hello")

	got := b.byEvent("doc-update")
	if len(got) != 1 {
		t.Fatalf("doc-update broadcasts = %d, want 1", len(got))
	}
	if got[0].Kind != "others" || got[0].Exclude != "conn-1" {
		t.Errorf("doc-update delivery = %+v, want others excluding conn-1", got[0])
	}
	if got[0].Payload.(*DocText).Text != "hello" {
		t.Errorf("doc-update payload = %+v", got[0].Payload)
	}
}

func TestDocumentDefaultsToEmpty(t *testing.T) {
	svc, _ := newDocFixture()
	if got := svc.GetText("untouched"); got != "" {
		t.Errorf("GetText on untouched room = %q, want empty", got)
	}
}

func TestDocumentEmptyWriteIsValid(t *testing.T) {
	svc, b := newDocFixture()
	svc.SetText("conn-1", "room-a", "something")
	svc.SetText("conn-1", "room-a", "")

	if got := svc.GetText("room-a"); got != "" {
		t.Errorf("GetText = %q, want empty after clearing write", got)
	}
	if got := b.byEvent("doc-update"); len(got) != 2 {
		t.Errorf("doc-update broadcasts = %d, want 2 (empty write still broadcasts)", len(got))
	}
}
