package waitlist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	waitlistRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/waitlist"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

type fakeRepo struct {
	entries map[string]*domain.WaitlistEntry // по WaitlistID

	active    *domain.WaitlistEntry
	activeErr error

	byEmail []*domain.WaitlistEntry
	matches []*domain.WaitlistEntry

	created *domain.WaitlistEntry
	updated *domain.WaitlistUpdate
	deleted string
}

func (f *fakeRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	created := *entry
	created.ID = 1
	created.CreatedAt = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeRepo) FindActive(_ context.Context, _ string, _ time.Time, _ string) (*domain.WaitlistEntry, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	if f.active == nil {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	return f.active, nil
}

func (f *fakeRepo) ListByEmail(_ context.Context, _, _ string, _ *time.Time) ([]*domain.WaitlistEntry, error) {
	return f.byEmail, nil
}

func (f *fakeRepo) Matches(_ context.Context, _ string, _ time.Time) ([]*domain.WaitlistEntry, error) {
	return f.matches, nil
}

func (f *fakeRepo) Update(_ context.Context, waitlistID string, upd domain.WaitlistUpdate) (*domain.WaitlistEntry, error) {
	entry, ok := f.entries[waitlistID]
	if !ok {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	f.updated = &upd
	if upd.Status != nil {
		entry.Status = *upd.Status
	}
	if upd.Priority != nil {
		entry.Priority = *upd.Priority
	}
	return entry, nil
}

func (f *fakeRepo) Delete(_ context.Context, waitlistID string) error {
	if _, ok := f.entries[waitlistID]; !ok {
		return waitlistRepo.ErrEntryNotFound
	}
	f.deleted = waitlistID
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixedSuffix struct{ suffix string }

func (f fixedSuffix) Suffix() string { return f.suffix }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRepo) *Service {
	now := time.Date(2026, 8, 28, 9, 30, 15, 0, time.UTC)
	return NewServiceWithProviders(repo, fixedTime{now: now}, fixedSuffix{suffix: "a1b2c3d4"}, noopLogger{})
}

func TestService_Add(t *testing.T) {
	t.Run("mints id and applies defaults", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo)

		resp, err := svc.Add(context.Background(), &models.AddEntryRequest{
			GuestEmail:    "  Guest@Example.COM ",
			Club:          "island",
			RequestedDate: "2026-09-10",
		})
		require.NoError(t, err)

		assert.Equal(t, "WL-20260828093015-a1b2c3d4", resp.WaitlistID)
		assert.Equal(t, "guest@example.com", resp.GuestEmail)
		assert.Equal(t, "Flexible", resp.PreferredTime)
		assert.Equal(t, "Flexible", resp.TimeFlexibility)
		assert.Equal(t, 1, resp.Players)
		assert.Equal(t, 5, resp.Priority)
		assert.Equal(t, "Waiting", resp.Status)
		assert.Equal(t, "email_bot", resp.Source)
		// Отсутствие поля трактуется как согласие на уведомления
		assert.True(t, resp.OptInConfirmed)
	})

	t.Run("explicit fields kept", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newTestService(repo)

		optOut := false
		resp, err := svc.Add(context.Background(), &models.AddEntryRequest{
			GuestEmail:      "guest@example.com",
			GuestName:       "Pat Doe",
			Club:            "island",
			RequestedDate:   "2026-09-10",
			PreferredTime:   "10:00 AM",
			TimeFlexibility: "Morning Only",
			Players:         4,
			Priority:        8,
			Source:          "manual",
			OptInConfirmed:  &optOut,
		})
		require.NoError(t, err)
		assert.Equal(t, "10:00 AM", resp.PreferredTime)
		assert.Equal(t, "Morning Only", resp.TimeFlexibility)
		assert.Equal(t, 4, resp.Players)
		assert.Equal(t, 8, resp.Priority)
		assert.Equal(t, "manual", resp.Source)
		assert.False(t, resp.OptInConfirmed)
	})

	t.Run("overlong email rejected", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		_, err := svc.Add(context.Background(), &models.AddEntryRequest{
			GuestEmail:    strings.Repeat("a", domain.MaxEmailLength) + "@example.com",
			Club:          "island",
			RequestedDate: "2026-09-10",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("active duplicate rejected", func(t *testing.T) {
		repo := &fakeRepo{active: &domain.WaitlistEntry{WaitlistID: "WL-x", Status: domain.WaitlistWaiting}}
		svc := newTestService(repo)

		_, err := svc.Add(context.Background(), &models.AddEntryRequest{
			GuestEmail:    "guest@example.com",
			Club:          "island",
			RequestedDate: "2026-09-10",
		})
		assert.ErrorIs(t, err, ErrDuplicateEntry)
		assert.Nil(t, repo.created)
	})

	t.Run("required fields", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		cases := []models.AddEntryRequest{
			{Club: "island", RequestedDate: "2026-09-10"},
			{GuestEmail: "g@e.com", RequestedDate: "2026-09-10"},
			{GuestEmail: "g@e.com", Club: "island"},
			{GuestEmail: "g@e.com", Club: "island", RequestedDate: "10/09/2026"},
		}
		for _, req := range cases {
			_, err := svc.Add(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})

	t.Run("duplicate check failure wraps internal", func(t *testing.T) {
		repo := &fakeRepo{activeErr: errors.New("db down")}
		svc := newTestService(repo)

		_, err := svc.Add(context.Background(), &models.AddEntryRequest{
			GuestEmail:    "guest@example.com",
			Club:          "island",
			RequestedDate: "2026-09-10",
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Check(t *testing.T) {
	t.Run("returns all entries regardless of status", func(t *testing.T) {
		repo := &fakeRepo{byEmail: []*domain.WaitlistEntry{
			{WaitlistID: "WL-old", Status: domain.WaitlistCancelled},
			{WaitlistID: "WL-live", Status: domain.WaitlistNotified, RequestedDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		}}
		svc := newTestService(repo)

		resp, err := svc.Check(context.Background(), "guest@example.com", "island", nil)
		require.NoError(t, err)
		assert.True(t, resp.OnWaitlist)
		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "WL-old", resp.Entries[0].WaitlistID)
		assert.Equal(t, "WL-live", resp.Entries[1].WaitlistID)
	})

	t.Run("only inactive entries still count", func(t *testing.T) {
		repo := &fakeRepo{byEmail: []*domain.WaitlistEntry{
			{WaitlistID: "WL-old", Status: domain.WaitlistExpired},
			{WaitlistID: "WL-older", Status: domain.WaitlistCancelled},
		}}
		svc := newTestService(repo)

		resp, err := svc.Check(context.Background(), "guest@example.com", "island", nil)
		require.NoError(t, err)
		assert.True(t, resp.OnWaitlist)
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("no entries", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})

		resp, err := svc.Check(context.Background(), "guest@example.com", "island", nil)
		require.NoError(t, err)
		assert.False(t, resp.OnWaitlist)
		assert.Equal(t, 0, resp.Count)
		assert.NotNil(t, resp.Entries)
	})

	t.Run("missing parameters", func(t *testing.T) {
		svc := newTestService(&fakeRepo{})
		_, err := svc.Check(context.Background(), "", "island", nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	entry := &domain.WaitlistEntry{
		WaitlistID:    "WL-1",
		Status:        domain.WaitlistWaiting,
		Priority:      5,
		RequestedDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	}

	t.Run("status and priority updated", func(t *testing.T) {
		repo := &fakeRepo{entries: map[string]*domain.WaitlistEntry{"WL-1": entry}}
		svc := newTestService(repo)

		status := "Notified"
		priority := 9
		resp, err := svc.Update(context.Background(), "WL-1", &models.UpdateEntryRequest{Status: &status, Priority: &priority})
		require.NoError(t, err)
		assert.Equal(t, "Notified", resp.Status)
		assert.Equal(t, 9, resp.Priority)
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := &fakeRepo{entries: map[string]*domain.WaitlistEntry{"WL-1": entry}}
		svc := newTestService(repo)

		status := "Vanished"
		_, err := svc.Update(context.Background(), "WL-1", &models.UpdateEntryRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("priority out of range", func(t *testing.T) {
		repo := &fakeRepo{entries: map[string]*domain.WaitlistEntry{"WL-1": entry}}
		svc := newTestService(repo)

		priority := 11
		_, err := svc.Update(context.Background(), "WL-1", &models.UpdateEntryRequest{Priority: &priority})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty update", func(t *testing.T) {
		svc := newTestService(&fakeRepo{entries: map[string]*domain.WaitlistEntry{"WL-1": entry}})
		_, err := svc.Update(context.Background(), "WL-1", &models.UpdateEntryRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeRepo{entries: map[string]*domain.WaitlistEntry{}})
		status := "Notified"
		_, err := svc.Update(context.Background(), "WL-404", &models.UpdateEntryRequest{Status: &status})
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestService_Matches(t *testing.T) {
	repo := &fakeRepo{matches: []*domain.WaitlistEntry{
		{WaitlistID: "WL-vip", Priority: 9, Status: domain.WaitlistWaiting},
		{WaitlistID: "WL-reg", Priority: 5, Status: domain.WaitlistWaiting},
	}}
	svc := newTestService(repo)

	resp, err := svc.Matches(context.Background(), "island", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "10:30 AM")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "WL-vip", resp.Matches[0].WaitlistID)
	assert.Equal(t, "2026-09-10", resp.AvailableDate)
	assert.Equal(t, "10:30 AM", resp.AvailableTime)

	_, err = svc.Matches(context.Background(), "", time.Now(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Remove(t *testing.T) {
	repo := &fakeRepo{entries: map[string]*domain.WaitlistEntry{"WL-1": {WaitlistID: "WL-1"}}}
	svc := newTestService(repo)

	require.NoError(t, svc.Remove(context.Background(), "WL-1"))
	assert.Equal(t, "WL-1", repo.deleted)

	assert.ErrorIs(t, svc.Remove(context.Background(), "WL-404"), ErrEntryNotFound)
}
