package marketing

import (
	"context"
	"fmt"

	"github.com/jimbobirecode/teemail-service/internal/service/marketing/models"
)

// Service сервис маркетинговой сегментации гостей
type Service struct {
	activityRepo ActivityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса сегментации
func NewService(activityRepo ActivityRepository, logger Logger) *Service {
	return &Service{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Segments раскладывает гостей клуба по сегментам prospect / first_timer /
// repeat / vip на основе числа состоявшихся бронирований
func (s *Service) Segments(ctx context.Context, club string) (*models.SegmentsResponse, error) {
	s.logger.Info("Segments: building segments for club=%s", club)

	if club == "" {
		s.logger.Warn("Segments: missing club parameter")
		return nil, fmt.Errorf("%w: club is required", ErrInvalidInput)
	}

	activity, err := s.activityRepo.GuestActivity(ctx, club)
	if err != nil {
		s.logger.Error("Segments: repository error for club=%s: %v", club, err)
		return nil, fmt.Errorf("%w: Segments - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainActivity(club, activity)
	s.logger.Info("Segments: segmented %d guests for club=%s", len(resp.Guests), club)
	return resp, nil
}
