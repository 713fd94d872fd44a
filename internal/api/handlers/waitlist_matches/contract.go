package waitlist_matches

import (
	"context"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

type WaitlistService interface {
	Matches(ctx context.Context, club string, date time.Time, availableTime string) (*models.MatchesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
