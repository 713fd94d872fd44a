package update_waitlist

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

type WaitlistService interface {
	Update(ctx context.Context, waitlistID string, req *models.UpdateEntryRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
