package get_segments

import (
	"context"

	"github.com/jimbobirecode/teemail-service/internal/service/marketing/models"
)

type MarketingService interface {
	Segments(ctx context.Context, club string) (*models.SegmentsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
