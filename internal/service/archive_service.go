package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"holomeet/internal/model"
	"holomeet/internal/repository"
	"holomeet/internal/store"
)

var ErrArchiveNotFound = errors.New("archive not found")

// ArchiveService produces the durable meeting record on end-meeting:
// transcript and chat merged into one chronological record, persisted
// and retrievable by handle. Concurrent archives of the same room both
// succeed and produce distinct records.
type ArchiveService struct {
	store *store.RoomStore
	repo  repository.ArchiveRepo
}

// NewArchiveService creates a new archive service
func NewArchiveService(st *store.RoomStore, repo repository.ArchiveRepo) *ArchiveService {
	return &ArchiveService{
		store: st,
		repo:  repo,
	}
}

// Archive builds and persists the meeting record for a room. An empty
// room archives fine: empty roster, empty transcript text.
func (s *ArchiveService) Archive(ctx context.Context, roomKey string) (*model.MeetingRecord, error) {
	segments := s.store.TranscriptSnapshot(roomKey)
	messages := s.store.ChatSnapshot(roomKey)

	record := buildMeetingRecord(roomKey, segments, messages, time.Now())
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist meeting record: %w", err)
	}
	return record, nil
}

// List returns the persisted archive handles for a room.
func (s *ArchiveService) List(ctx context.Context, roomKey string) ([]model.ArchiveHandle, error) {
	return s.repo.ListByRoom(ctx, roomKey)
}

// Get retrieves one persisted record. A handle that does not exist or
// belongs to a different room yields ErrArchiveNotFound.
func (s *ArchiveService) Get(ctx context.Context, roomKey, handle string) (*model.MeetingRecord, error) {
	record, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if record == nil || record.RoomKey != roomKey {
		return nil, ErrArchiveNotFound
	}
	return record, nil
}

// buildMeetingRecord merges voice and chat events chronologically.
// The sort is stable: events with equal timestamps keep their relative
// insertion order. Chat messages without text (attachment-only) are
// not represented in the merged record.
func buildMeetingRecord(roomKey string, segments []model.TranscriptSegment, messages []model.ChatMessage, now time.Time) *model.MeetingRecord {
	events := make([]model.MeetingEvent, 0, len(segments)+len(messages))
	for _, seg := range segments {
		events = append(events, model.MeetingEvent{
			Kind:      model.EventVoice,
			UserID:    seg.UserID,
			Name:      seg.Name,
			Text:      seg.Text,
			Timestamp: seg.Timestamp,
		})
	}
	for _, msg := range messages {
		if msg.Text == "" {
			continue
		}
		events = append(events, model.MeetingEvent{
			Kind:      model.EventChat,
			UserID:    msg.UserID,
			Name:      msg.Name,
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	startedAt := now
	if len(events) > 0 {
		startedAt = events[0].Timestamp
	}

	// Roster: unique user id with its last-seen name, ordered by first
	// appearance in the merged record.
	participants := []model.MeetingParticipant{}
	seen := make(map[string]int)
	for _, e := range events {
		if idx, ok := seen[e.UserID]; ok {
			participants[idx].Name = e.Name
			continue
		}
		seen[e.UserID] = len(participants)
		participants = append(participants, model.MeetingParticipant{
			UserID: e.UserID,
			Name:   e.Name,
		})
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s",
			e.Timestamp.UTC().Format(time.RFC3339), e.Name, e.Text))
	}

	handle := fmt.Sprintf("%s-%d-%s", roomKey, now.UnixMilli(), uuid.New().String()[:8])

	return &model.MeetingRecord{
		Handle:         handle,
		RoomKey:        roomKey,
		StartedAt:      startedAt,
		EndedAt:        now,
		Participants:   participants,
		Events:         events,
		TranscriptText: strings.Join(lines, "\n"),
	}
}
