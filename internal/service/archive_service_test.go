package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"holomeet/internal/model"
	"holomeet/internal/store"
)

// fakeArchiveRepo is an in-memory stand-in for the MongoDB repository.
type fakeArchiveRepo struct {
	records []*model.MeetingRecord
	saveErr error
}

func (f *fakeArchiveRepo) Save(ctx context.Context, record *model.MeetingRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeArchiveRepo) ListByRoom(ctx context.Context, roomKey string) ([]model.ArchiveHandle, error) {
	handles := []model.ArchiveHandle{}
	for _, r := range f.records {
		if r.RoomKey == roomKey {
			handles = append(handles, model.ArchiveHandle{Handle: r.Handle, RoomKey: r.RoomKey, EndedAt: r.EndedAt})
		}
	}
	return handles, nil
}

func (f *fakeArchiveRepo) GetByHandle(ctx context.Context, handle string) (*model.MeetingRecord, error) {
	for _, r := range f.records {
		if r.Handle == handle {
			return r, nil
		}
	}
	return nil, nil
}

func ts(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func TestMeetingRecordMergesChronologically(t *testing.T) {
	segments := []model.TranscriptSegment{
		{UserID: "u1", Name: "Alice", Text: "voice one", Timestamp: ts(100)},
		{UserID: "u2", Name: "Bob", Text: "voice three", Timestamp: ts(300)},
	}
	messages := []model.ChatMessage{
		{UserID: "u2", Name: "Bob", Text: "chat two", Timestamp: ts(200)},
	}

	rec := buildMeetingRecord("room-a", segments, messages, ts(1000))

	texts := make([]string, 0, len(rec.Events))
	for _, e := range rec.Events {
		texts = append(texts, e.Text)
	}
	want := []string{"voice one", "chat two", "voice three"}
	if len(texts) != len(want) {
		t.Fatalf("merged events = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("merged order = %v, want %v", texts, want)
		}
	}

	if !rec.StartedAt.Equal(ts(100)) {
		t.Errorf("startedAt = %v, want first event timestamp", rec.StartedAt)
	}
	if !rec.EndedAt.Equal(ts(1000)) {
		t.Errorf("endedAt = %v, want archive time", rec.EndedAt)
	}
	if !strings.Contains(rec.TranscriptText, "Alice: voice one") {
		t.Errorf("transcript text missing speaker line: %q", rec.TranscriptText)
	}
}

func TestMeetingRecordTieKeepsVoiceBeforeChat(t *testing.T) {
	// Equal timestamps: voice segments are appended to the merge list
	// before chat, and the stable sort preserves that.
	segments := []model.TranscriptSegment{
		{UserID: "u1", Name: "Alice", Text: "spoken", Timestamp: ts(500)},
	}
	messages := []model.ChatMessage{
		{UserID: "u1", Name: "Alice", Text: "typed", Timestamp: ts(500)},
	}

	rec := buildMeetingRecord("room-a", segments, messages, ts(1000))
	if rec.Events[0].Kind != model.EventVoice || rec.Events[1].Kind != model.EventChat {
		t.Errorf("tie order = %s, %s; want voice, chat", rec.Events[0].Kind, rec.Events[1].Kind)
	}
}

func TestMeetingRecordSkipsAttachmentOnlyChat(t *testing.T) {
	messages := []model.ChatMessage{
		{UserID: "u1", Name: "Alice", Attachments: []model.Attachment{{Name: "f.png"}}, Timestamp: ts(100)},
		{UserID: "u1", Name: "Alice", Text: "with text", Timestamp: ts(200)},
	}

	rec := buildMeetingRecord("room-a", nil, messages, ts(1000))
	if len(rec.Events) != 1 || rec.Events[0].Text != "with text" {
		t.Errorf("events = %+v, want only the textual message", rec.Events)
	}
}

func TestMeetingRecordRosterFirstAppearanceLastName(t *testing.T) {
	segments := []model.TranscriptSegment{
		{UserID: "u1", Name: "Alice", Text: "a", Timestamp: ts(100)},
		{UserID: "u2", Name: "Bob", Text: "b", Timestamp: ts(200)},
		{UserID: "u1", Name: "Alice Cooper", Text: "c", Timestamp: ts(300)},
	}

	rec := buildMeetingRecord("room-a", segments, nil, ts(1000))
	if len(rec.Participants) != 2 {
		t.Fatalf("roster = %+v, want 2 entries", rec.Participants)
	}
	if rec.Participants[0].UserID != "u1" || rec.Participants[1].UserID != "u2" {
		t.Errorf("roster order = %+v, want first-appearance order", rec.Participants)
	}
	if rec.Participants[0].Name != "Alice Cooper" {
		t.Errorf("roster name = %q, want last-seen name", rec.Participants[0].Name)
	}
}

func TestEmptyRoomArchivesFine(t *testing.T) {
	now := ts(1000)
	rec := buildMeetingRecord("room-a", nil, nil, now)
	if len(rec.Events) != 0 || len(rec.Participants) != 0 {
		t.Errorf("empty room record = %+v", rec)
	}
	if rec.TranscriptText != "" {
		t.Errorf("transcript text = %q, want empty", rec.TranscriptText)
	}
	if !rec.StartedAt.Equal(now) {
		t.Errorf("startedAt = %v, want archive time when no events", rec.StartedAt)
	}
}

func TestArchivePersistsAndLists(t *testing.T) {
	st := store.NewRoomStore()
	repo := &fakeArchiveRepo{}
	svc := NewArchiveService(st, repo)
	ctx := context.Background()

	st.AppendSegment("room-a", model.TranscriptSegment{UserID: "u1", Name: "Alice", Text: "hi", Timestamp: ts(100)})

	rec, err := svc.Archive(ctx, "room-a")
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if rec.Handle == "" || !strings.HasPrefix(rec.Handle, "room-a-") {
		t.Errorf("handle = %q", rec.Handle)
	}

	handles, err := svc.List(ctx, "room-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(handles) != 1 || handles[0].Handle != rec.Handle {
		t.Errorf("handles = %+v", handles)
	}

	got, err := svc.Get(ctx, "room-a", rec.Handle)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TranscriptText != rec.TranscriptText {
		t.Errorf("Get returned %+v", got)
	}
}

func TestConcurrentArchivesGetDistinctHandles(t *testing.T) {
	st := store.NewRoomStore()
	repo := &fakeArchiveRepo{}
	svc := NewArchiveService(st, repo)
	ctx := context.Background()

	a, err := svc.Archive(ctx, "room-a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Archive(ctx, "room-a")
	if err != nil {
		t.Fatal(err)
	}
	if a.Handle == b.Handle {
		t.Errorf("two archives share handle %q", a.Handle)
	}
}

func TestGetRejectsWrongRoom(t *testing.T) {
	st := store.NewRoomStore()
	repo := &fakeArchiveRepo{}
	svc := NewArchiveService(st, repo)
	ctx := context.Background()

	rec, err := svc.Archive(ctx, "room-a")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(ctx, "room-b", rec.Handle); !errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("cross-room Get err = %v, want ErrArchiveNotFound", err)
	}
	if _, err := svc.Get(ctx, "room-a", "missing"); !errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("missing handle Get err = %v, want ErrArchiveNotFound", err)
	}
}

func TestArchiveSaveFailureIsSurfaced(t *testing.T) {
	st := store.NewRoomStore()
	repo := &fakeArchiveRepo{saveErr: errors.New("mongo down")}
	svc := NewArchiveService(st, repo)

	if _, err := svc.Archive(context.Background(), "room-a"); err == nil {
		t.Error("Archive succeeded despite persistence failure")
	}
}
