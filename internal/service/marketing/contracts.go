package marketing

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/domain"
)

// ActivityRepository интерфейс репозитория агрегированной активности гостей
type ActivityRepository interface {
	GuestActivity(ctx context.Context, club string) ([]domain.GuestActivity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
