package service

import (
	"context"
	"encoding/json"
	"testing"

	"holomeet/internal/model"
	"holomeet/internal/store"
)

func newSignalFixture() (*SignalService, *RoomService, *fakeBroadcaster) {
	rooms := NewRoomService(store.NewRoomStore(), nil)
	b := newFakeBroadcaster()
	rooms.SetBroadcaster(b)

	svc := NewSignalService(rooms)
	svc.SetBroadcaster(b)
	return svc, rooms, b
}

func TestRelayDeliversToTargetOnly(t *testing.T) {
	svc, rooms, b := newSignalFixture()
	ctx := context.Background()
	rooms.Join(ctx, "conn-1", "room-a", model.Participant{UserID: "u1"})
	rooms.Join(ctx, "conn-2", "room-a", model.Participant{UserID: "u2"})

	offer := json.RawMessage(`{"sdp":"offer"}`)
	svc.Relay("conn-1", "room-a", "u2", offer)

	got := b.byEvent("signal")
	if len(got) != 1 {
		t.Fatalf("signal deliveries = %d, want 1", len(got))
	}
	if got[0].ConnID != "conn-2" {
		t.Errorf("delivered to %q, want conn-2", got[0].ConnID)
	}
	d := got[0].Payload.(*SignalDelivery)
	if d.From != "u1" {
		t.Errorf("from = %q, want sender user id u1", d.From)
	}
	if string(d.Payload) != string(offer) {
		t.Errorf("payload = %s, want untouched %s", d.Payload, offer)
	}
}

func TestRelayToUnknownTargetIsSilent(t *testing.T) {
	svc, rooms, b := newSignalFixture()
	rooms.Join(context.Background(), "conn-1", "room-a", model.Participant{UserID: "u1"})
	before := b.count()

	svc.Relay("conn-1", "room-a", "nobody", json.RawMessage(`{}`))
	if b.count() != before {
		t.Error("relay to unknown target produced a delivery")
	}
}

func TestRelayFromUnjoinedSenderIsSilent(t *testing.T) {
	svc, rooms, b := newSignalFixture()
	rooms.Join(context.Background(), "conn-2", "room-a", model.Participant{UserID: "u2"})
	before := b.count()

	svc.Relay("ghost", "room-a", "u2", json.RawMessage(`{}`))
	if b.count() != before {
		t.Error("relay from unjoined sender produced a delivery")
	}
}

func TestRelayResolvesDuplicateUserIDByJoinOrder(t *testing.T) {
	svc, rooms, b := newSignalFixture()
	ctx := context.Background()
	rooms.Join(ctx, "conn-1", "room-a", model.Participant{UserID: "sender"})
	rooms.Join(ctx, "conn-2", "room-a", model.Participant{UserID: "dup"})
	rooms.Join(ctx, "conn-3", "room-a", model.Participant{UserID: "dup"})

	svc.Relay("conn-1", "room-a", "dup", json.RawMessage(`{}`))

	got := b.byEvent("signal")
	if len(got) != 1 || got[0].ConnID != "conn-2" {
		t.Errorf("deliveries = %+v, want single delivery to conn-2", got)
	}
}
