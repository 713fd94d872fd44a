package check_waitlist

import (
	"context"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

type WaitlistService interface {
	Check(ctx context.Context, email, club string, date *time.Time) (*models.CheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
