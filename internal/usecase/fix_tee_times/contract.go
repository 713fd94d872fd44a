package fix_tee_times

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListMissingTeeTime(ctx context.Context, club string) ([]*domain.Booking, error)
	UpdateTeeTime(ctx context.Context, bookingID string, teeTime string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
