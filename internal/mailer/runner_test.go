package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimbobirecode/teemail-service/internal/config"
	"github.com/jimbobirecode/teemail-service/internal/domain"
)

type fakeBookingRepo struct {
	byDate map[string][]*domain.Booking // ключ - дата YYYY-MM-DD

	requestedDates []string
}

func (f *fakeBookingRepo) ListByTeeDate(_ context.Context, _ string, date time.Time, status domain.BookingStatus) ([]*domain.Booking, error) {
	if status != domain.StatusBooked {
		return nil, errors.New("unexpected status")
	}
	key := date.Format(domain.DateFormat)
	f.requestedDates = append(f.requestedDates, key)
	return f.byDate[key], nil
}

type sentMail struct {
	to         string
	templateID string
	data       map[string]interface{}
}

type fakeMailClient struct {
	sent []sentMail
	err  error
}

func (f *fakeMailClient) SendTemplateWithGracefulDegradation(_ context.Context, to, templateID string, data map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, templateID: templateID, data: data})
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string { return &s }

func TestRunner_RunOnce(t *testing.T) {
	// Сегодня 2026-08-28: напоминание за 2 дня целит в игры 2026-08-30,
	// благодарность на следующий день - в игры 2026-08-27
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	cfg := config.MailerConfig{
		Enabled:       true,
		Club:          "island",
		IntervalHours: 24,
		Templates: []config.MailerTemplate{
			{Name: "reminder", OffsetDays: -2, TemplateID: "d-reminder"},
			{Name: "thank_you", OffsetDays: 1, TemplateID: "d-thanks"},
		},
	}

	t.Run("offsets map to tee dates", func(t *testing.T) {
		repo := &fakeBookingRepo{byDate: map[string][]*domain.Booking{
			"2026-08-30": {{
				BookingID:  "BOOK-0001",
				GuestEmail: "upcoming@example.com",
				Club:       "island",
				Date:       time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
				TeeTime:    strPtr("10:30 AM"),
				Players:    4,
				Status:     domain.StatusBooked,
			}},
			"2026-08-27": {{
				BookingID:  "BOOK-0002",
				GuestEmail: "played@example.com",
				Club:       "island",
				Date:       time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
				Status:     domain.StatusBooked,
			}},
		}}
		mail := &fakeMailClient{}
		runner := NewRunnerWithTimeProvider(cfg, repo, mail, fixedTime{now: now}, noopLogger{})

		runner.RunOnce(context.Background())

		assert.Equal(t, []string{"2026-08-30", "2026-08-27"}, repo.requestedDates)

		require.Len(t, mail.sent, 2)
		assert.Equal(t, "upcoming@example.com", mail.sent[0].to)
		assert.Equal(t, "d-reminder", mail.sent[0].templateID)
		assert.Equal(t, "10:30 AM", mail.sent[0].data["tee_time"])
		assert.Equal(t, "The Island Golf Club", mail.sent[0].data["club_name"])

		assert.Equal(t, "played@example.com", mail.sent[1].to)
		assert.Equal(t, "d-thanks", mail.sent[1].templateID)
		assert.Equal(t, "TBD", mail.sent[1].data["tee_time"])
	})

	t.Run("send failures do not stop the pass", func(t *testing.T) {
		repo := &fakeBookingRepo{byDate: map[string][]*domain.Booking{
			"2026-08-30": {
				{BookingID: "BOOK-0001", GuestEmail: "a@example.com", Date: now},
				{BookingID: "BOOK-0002", GuestEmail: "b@example.com", Date: now},
			},
		}}
		mail := &fakeMailClient{err: errors.New("sendgrid down")}
		runner := NewRunnerWithTimeProvider(cfg, repo, mail, fixedTime{now: now}, noopLogger{})

		runner.RunOnce(context.Background())
		assert.Empty(t, mail.sent)
	})
}

func TestRunner_StartStops(t *testing.T) {
	cfg := config.MailerConfig{Club: "island", IntervalHours: 1}
	runner := NewRunnerWithTimeProvider(cfg, &fakeBookingRepo{}, &fakeMailClient{}, fixedTime{now: time.Now()}, noopLogger{})

	stopCh := make(chan struct{})
	done := make(chan struct{})
	go func() {
		runner.Start(context.Background(), stopCh)
		close(done)
	}()

	close(stopCh)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}
