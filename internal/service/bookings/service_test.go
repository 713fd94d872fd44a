package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	bookingRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/booking"
	"github.com/jimbobirecode/teemail-service/internal/integrations/stripe"
	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[string]*domain.Booking

	listFilter domain.BookingsFilter
	listErr    error

	updatedStatus    *domain.BookingStatus
	updatedStatusBy  string
	updatedTeeTime   *string
	updatedNote      *string
	deletedBookingID string
}

func (f *fakeBookingRepo) GetByBookingID(_ context.Context, bookingID string) (*domain.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.listFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID string, status domain.BookingStatus, updatedBy string) error {
	b, ok := f.bookings[bookingID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	f.updatedStatus = &status
	f.updatedStatusBy = updatedBy
	return nil
}

func (f *fakeBookingRepo) UpdateTeeTime(_ context.Context, bookingID string, teeTime string) error {
	if _, ok := f.bookings[bookingID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedTeeTime = &teeTime
	return nil
}

func (f *fakeBookingRepo) UpdateNote(_ context.Context, bookingID string, note string) error {
	if _, ok := f.bookings[bookingID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedNote = &note
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, bookingID string) error {
	if _, ok := f.bookings[bookingID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, bookingID)
	f.deletedBookingID = bookingID
	return nil
}

type fakeEmailRepo struct {
	emails     []*domain.InboundEmail
	guestEmail string
	err        error
}

func (f *fakeEmailRepo) ListForBooking(_ context.Context, _ string, guestEmail string) ([]*domain.InboundEmail, error) {
	f.guestEmail = guestEmail
	return f.emails, f.err
}

type fakeStripeClient struct {
	req  stripe.PaymentLinkRequest
	link *stripe.PaymentLink
	err  error
}

func (f *fakeStripeClient) CreatePaymentLink(_ context.Context, req stripe.PaymentLinkRequest) (*stripe.PaymentLink, error) {
	f.req = req
	return f.link, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(bookingID string, status domain.BookingStatus) *domain.Booking {
	teeTime := "10:30 AM"
	return &domain.Booking{
		ID:         1,
		BookingID:  bookingID,
		GuestEmail: "guest@example.com",
		Club:       "island",
		Date:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		TeeTime:    &teeTime,
		Players:    4,
		Total:      480,
		Status:     status,
		Timestamp:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo *fakeBookingRepo, emails *fakeEmailRepo, stripeClient *fakeStripeClient, now time.Time) *Service {
	return NewServiceWithTimeProvider(repo, emails, stripeClient, "eur", &fakeTimeProvider{now: now}, noopLogger{})
}

func TestService_List(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	t.Run("preset resolves to date range", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusInquiry),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, now)

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Club:   "island",
			Preset: models.PresetNext7Days,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)

		require.NotNil(t, repo.listFilter.StartDate)
		require.NotNil(t, repo.listFilter.EndDate)
		assert.Equal(t, "2026-08-28", repo.listFilter.StartDate.Format(domain.DateFormat))
		assert.Equal(t, "2026-09-04", repo.listFilter.EndDate.Format(domain.DateFormat))
	})

	t.Run("no status filter defaults to working funnel", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusInquiry),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, now)

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Club: "island"})
		require.NoError(t, err)
		assert.ElementsMatch(t, domain.ActiveBookingStatuses, repo.listFilter.Statuses)
	})

	t.Run("missing club is invalid input", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeEmailRepo{}, &fakeStripeClient{}, now)

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeEmailRepo{}, &fakeStripeClient{}, now)

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Club:     "island",
			Statuses: []string{"Teleported"},
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("repository error wraps internal", func(t *testing.T) {
		repo := &fakeBookingRepo{listErr: errors.New("boom")}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, now)

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Club: "island"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Get(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"BOOK-0001": testBooking("BOOK-0001", domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

	t.Run("found", func(t *testing.T) {
		resp, err := svc.Get(context.Background(), "BOOK-0001")
		require.NoError(t, err)
		assert.Equal(t, "BOOK-0001", resp.BookingID)
		assert.Equal(t, "10:30 AM", resp.TeeTime)
		assert.Equal(t, "2026-09-10", resp.Date)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "BOOK-9999")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("valid forward transition", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusInquiry),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		resp, err := svc.UpdateStatus(context.Background(), "BOOK-0001", &models.UpdateStatusRequest{
			Status:    "Requested",
			UpdatedBy: "staff@club.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Requested", resp.Status)
		assert.Equal(t, "staff@club.com", repo.updatedStatusBy)
	})

	t.Run("skipping a funnel stage is rejected", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusInquiry),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		_, err := svc.UpdateStatus(context.Background(), "BOOK-0001", &models.UpdateStatusRequest{Status: "Booked"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Nil(t, repo.updatedStatus)
	})

	t.Run("terminal status cannot move", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusCancelled),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		_, err := svc.UpdateStatus(context.Background(), "BOOK-0001", &models.UpdateStatusRequest{Status: "Confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancellation allowed from any active status", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusRequested),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		resp, err := svc.UpdateStatus(context.Background(), "BOOK-0001", &models.UpdateStatusRequest{Status: "Cancelled"})
		require.NoError(t, err)
		assert.Equal(t, "Cancelled", resp.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusInquiry),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		_, err := svc.UpdateStatus(context.Background(), "BOOK-0001", &models.UpdateStatusRequest{Status: "Flying"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService(&fakeBookingRepo{}, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		_, err := svc.UpdateStatus(context.Background(), "BOOK-9999", &models.UpdateStatusRequest{Status: "Requested"})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_UpdateTeeTime(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"BOOK-0001": testBooking("BOOK-0001", domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

	t.Run("trims and stores value", func(t *testing.T) {
		err := svc.UpdateTeeTime(context.Background(), "BOOK-0001", &models.UpdateTeeTimeRequest{TeeTime: "  2:15 PM "})
		require.NoError(t, err)
		require.NotNil(t, repo.updatedTeeTime)
		assert.Equal(t, "2:15 PM", *repo.updatedTeeTime)
	})

	t.Run("empty value rejected", func(t *testing.T) {
		err := svc.UpdateTeeTime(context.Background(), "BOOK-0001", &models.UpdateTeeTimeRequest{TeeTime: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_UpdateNote(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"BOOK-0001": testBooking("BOOK-0001", domain.StatusConfirmed),
	}}
	svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

	err := svc.UpdateNote(context.Background(), "BOOK-0001", &models.UpdateNoteRequest{Note: "Guest prefers early slot"})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedNote)
	assert.Equal(t, "Guest prefers early slot", *repo.updatedNote)

	err = svc.UpdateNote(context.Background(), "BOOK-9999", &models.UpdateNoteRequest{Note: "x"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"BOOK-0001": testBooking("BOOK-0001", domain.StatusCancelled),
	}}
	svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

	require.NoError(t, svc.Delete(context.Background(), "BOOK-0001"))
	assert.Equal(t, "BOOK-0001", repo.deletedBookingID)

	assert.ErrorIs(t, svc.Delete(context.Background(), "BOOK-0001"), ErrBookingNotFound)
}

func TestService_GetEmails(t *testing.T) {
	subject := "Tee time request"
	emails := &fakeEmailRepo{emails: []*domain.InboundEmail{
		{ID: 7, MessageID: "msg-7", FromEmail: "guest@example.com", ToEmail: "bookings@club.com", Subject: &subject, EmailType: domain.EmailInquiry, ReceivedAt: time.Now()},
	}}
	repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
		"BOOK-0001": testBooking("BOOK-0001", domain.StatusInquiry),
	}}
	svc := newTestService(repo, emails, &fakeStripeClient{}, time.Now())

	resp, err := svc.GetEmails(context.Background(), "BOOK-0001")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "msg-7", resp.Emails[0].MessageID)
	// непривязанные письма ищутся по адресу гостя
	assert.Equal(t, "guest@example.com", emails.guestEmail)

	_, err = svc.GetEmails(context.Background(), "BOOK-9999")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_CreatePaymentLink(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stripeClient := &fakeStripeClient{link: &stripe.PaymentLink{ID: "plink_123", URL: "https://pay.stripe.test/plink_123", Active: true}}
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusConfirmed),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, stripeClient, time.Now())

		resp, err := svc.CreatePaymentLink(context.Background(), "BOOK-0001")
		require.NoError(t, err)
		assert.Equal(t, "plink_123", resp.LinkID)
		assert.Equal(t, "https://pay.stripe.test/plink_123", resp.URL)
		assert.Equal(t, 480.0, resp.Amount)
		assert.Equal(t, "eur", resp.Currency)

		assert.Equal(t, int64(48000), stripeClient.req.AmountCents)
		assert.Equal(t, "BOOK-0001", stripeClient.req.Reference)
		assert.Contains(t, stripeClient.req.Description, "The Island Golf Club")
	})

	t.Run("zero total rejected", func(t *testing.T) {
		b := testBooking("BOOK-0002", domain.StatusConfirmed)
		b.Total = 0
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{"BOOK-0002": b}}
		svc := newTestService(repo, &fakeEmailRepo{}, &fakeStripeClient{}, time.Now())

		_, err := svc.CreatePaymentLink(context.Background(), "BOOK-0002")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("stripe failure wraps payment link error", func(t *testing.T) {
		stripeClient := &fakeStripeClient{err: errors.New("stripe down")}
		repo := &fakeBookingRepo{bookings: map[string]*domain.Booking{
			"BOOK-0001": testBooking("BOOK-0001", domain.StatusConfirmed),
		}}
		svc := newTestService(repo, &fakeEmailRepo{}, stripeClient, time.Now())

		_, err := svc.CreatePaymentLink(context.Background(), "BOOK-0001")
		assert.ErrorIs(t, err, ErrPaymentLink)
	})
}
