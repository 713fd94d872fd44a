package auth

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/domain"
)

// UserRepository интерфейс репозитория пользователей дашборда
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.DashboardUser, error)
	SetPermanentPassword(ctx context.Context, userID int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
