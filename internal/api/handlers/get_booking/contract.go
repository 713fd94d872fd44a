package get_booking

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

type BookingService interface {
	Get(ctx context.Context, bookingID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
