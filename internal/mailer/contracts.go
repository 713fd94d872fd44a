package mailer

import (
	"context"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByTeeDate(ctx context.Context, club string, date time.Time, status domain.BookingStatus) ([]*domain.Booking, error)
}

// MailClient интерфейс клиента отправки писем
type MailClient interface {
	SendTemplateWithGracefulDegradation(ctx context.Context, to, templateID string, dynamicData map[string]interface{}) error
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
