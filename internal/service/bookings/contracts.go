package bookings

import (
	"context"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/internal/integrations/stripe"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, updatedBy string) error
	UpdateTeeTime(ctx context.Context, bookingID string, teeTime string) error
	UpdateNote(ctx context.Context, bookingID string, note string) error
	Delete(ctx context.Context, bookingID string) error
}

// EmailRepository интерфейс репозитория входящих писем
type EmailRepository interface {
	ListForBooking(ctx context.Context, bookingID, guestEmail string) ([]*domain.InboundEmail, error)
}

// StripeClient интерфейс клиента платежных ссылок
type StripeClient interface {
	CreatePaymentLink(ctx context.Context, req stripe.PaymentLinkRequest) (*stripe.PaymentLink, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
