package create_payment_link

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

type BookingService interface {
	CreatePaymentLink(ctx context.Context, bookingID string) (*models.PaymentLinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
