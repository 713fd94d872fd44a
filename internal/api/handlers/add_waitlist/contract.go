package add_waitlist

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

type WaitlistService interface {
	Add(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
