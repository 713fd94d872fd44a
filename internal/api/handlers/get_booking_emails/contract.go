package get_booking_emails

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

type BookingService interface {
	GetEmails(ctx context.Context, bookingID string) (*models.EmailListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
