package waitlist

import (
	"context"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/domain"
)

// WaitlistRepository интерфейс репозитория очереди ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	FindActive(ctx context.Context, email string, date time.Time, club string) (*domain.WaitlistEntry, error)
	ListByEmail(ctx context.Context, email, club string, date *time.Time) ([]*domain.WaitlistEntry, error)
	Matches(ctx context.Context, club string, date time.Time) ([]*domain.WaitlistEntry, error)
	Update(ctx context.Context, waitlistID string, upd domain.WaitlistUpdate) (*domain.WaitlistEntry, error)
	Delete(ctx context.Context, waitlistID string) error
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

// IDGenerator генерирует суффикс внешнего идентификатора записи
type IDGenerator interface {
	Suffix() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
