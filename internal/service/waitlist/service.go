package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	waitlistRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/waitlist"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

// Service сервис очереди ожидания
type Service struct {
	repo         WaitlistRepository
	timeProvider TimeProvider
	idGenerator  IDGenerator
	logger       Logger
}

// uuidGenerator генерирует суффикс из первых восьми hex-символов UUID
type uuidGenerator struct{}

func (uuidGenerator) Suffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewService создает новый экземпляр сервиса очереди ожидания
func NewService(repo WaitlistRepository, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: &RealTimeProvider{},
		idGenerator:  uuidGenerator{},
		logger:       logger,
	}
}

// NewServiceWithProviders создает сервис с кастомными провайдерами (для тестов)
func NewServiceWithProviders(repo WaitlistRepository, timeProvider TimeProvider, idGenerator IDGenerator, logger Logger) *Service {
	return &Service{
		repo:         repo,
		timeProvider: timeProvider,
		idGenerator:  idGenerator,
		logger:       logger,
	}
}

// Add ставит гостя в очередь ожидания.
// Гость не может стоять в очереди дважды на одну дату в одном клубе.
func (s *Service) Add(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Add: waitlist request email=%s, club=%s, date=%s", req.GuestEmail, req.Club, req.RequestedDate)

	entry, err := s.buildEntry(req)
	if err != nil {
		s.logger.Warn("Add: invalid request email=%s: %v", req.GuestEmail, err)
		return nil, err
	}

	existing, err := s.repo.FindActive(ctx, entry.GuestEmail, entry.RequestedDate, entry.Club)
	if err != nil && !errors.Is(err, waitlistRepo.ErrEntryNotFound) {
		s.logger.Error("Add: duplicate check failed for email=%s: %v", entry.GuestEmail, err)
		return nil, fmt.Errorf("%w: Add - duplicate check failed: %v", ErrInternal, err)
	}
	if existing != nil {
		s.logger.Warn("Add: email=%s already on waitlist for club=%s date=%s (id=%s)",
			entry.GuestEmail, entry.Club, req.RequestedDate, existing.WaitlistID)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, existing.WaitlistID)
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Add: create failed for email=%s: %v", entry.GuestEmail, err)
		return nil, fmt.Errorf("%w: Add - create failed: %v", ErrInternal, err)
	}

	s.logger.Info("Add: created waitlist entry id=%s for email=%s", created.WaitlistID, created.GuestEmail)
	return models.FromDomainEntry(created), nil
}

// buildEntry валидирует запрос и собирает domain запись с дефолтами
func (s *Service) buildEntry(req *models.AddEntryRequest) (*domain.WaitlistEntry, error) {
	email := strings.ToLower(strings.TrimSpace(req.GuestEmail))
	if email == "" {
		return nil, fmt.Errorf("%w: guestEmail is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxEmailLength {
		return nil, fmt.Errorf("%w: guestEmail exceeds %d characters", ErrInvalidInput, domain.MaxEmailLength)
	}

	name := strings.TrimSpace(req.GuestName)
	if len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: guestName exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Club == "" {
		return nil, fmt.Errorf("%w: club is required", ErrInvalidInput)
	}
	if req.RequestedDate == "" {
		return nil, fmt.Errorf("%w: requestedDate is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.RequestedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: requestedDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	preferredTime := strings.TrimSpace(req.PreferredTime)
	if preferredTime == "" {
		preferredTime = string(domain.FlexibilityFlexible)
	}

	flexibility := domain.TimeFlexibility(req.TimeFlexibility)
	if flexibility == "" {
		flexibility = domain.FlexibilityFlexible
	}

	players := req.Players
	if players <= 0 {
		players = domain.MinPlayers
	}
	if players > domain.MaxPlayers {
		return nil, fmt.Errorf("%w: players must be between %d and %d", ErrInvalidInput, domain.MinPlayers, domain.MaxPlayers)
	}

	priority := req.Priority
	if priority == 0 {
		priority = domain.DefaultWaitlistPriority
	}
	if priority < domain.MinWaitlistPriority || priority > domain.MaxWaitlistPriority {
		return nil, fmt.Errorf("%w: priority must be between %d and %d", ErrInvalidInput, domain.MinWaitlistPriority, domain.MaxWaitlistPriority)
	}

	source := req.Source
	if source == "" {
		source = domain.WaitlistSourceEmailBot
	}

	// Гость попадает в очередь из собственного письма, поэтому отсутствие
	// поля трактуется как согласие
	optIn := true
	if req.OptInConfirmed != nil {
		optIn = *req.OptInConfirmed
	}

	now := s.timeProvider.Now()
	return &domain.WaitlistEntry{
		WaitlistID:             fmt.Sprintf("WL-%s-%s", now.Format("20060102150405"), s.idGenerator.Suffix()),
		GuestEmail:             email,
		GuestName:              name,
		Club:                   req.Club,
		RequestedDate:          date,
		PreferredTime:          preferredTime,
		TimeFlexibility:        flexibility,
		Players:                players,
		GolfCourse:             req.GolfCourse,
		Status:                 domain.WaitlistWaiting,
		Priority:               priority,
		Notes:                  req.Notes,
		Source:                 source,
		OptInConfirmed:         optIn,
		OriginalBookingRequest: req.OriginalBookingRequest,
	}, nil
}

// Check проверяет, стоит ли гость в очереди; дата опциональна
func (s *Service) Check(ctx context.Context, email, club string, date *time.Time) (*models.CheckResponse, error) {
	s.logger.Info("Check: email=%s, club=%s", email, club)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || club == "" {
		s.logger.Warn("Check: missing email or club")
		return nil, fmt.Errorf("%w: email and club are required", ErrInvalidInput)
	}

	entries, err := s.repo.ListByEmail(ctx, email, club, date)
	if err != nil {
		s.logger.Error("Check: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	list := models.FromDomainEntryList(entries)
	s.logger.Info("Check: email=%s, found %d entries", email, list.Count)

	return &models.CheckResponse{
		OnWaitlist: list.Count > 0,
		Count:      list.Count,
		Entries:    list.Entries,
	}, nil
}

// Update частично обновляет запись очереди
func (s *Service) Update(ctx context.Context, waitlistID string, req *models.UpdateEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Update: waitlist id=%s", waitlistID)

	upd := domain.WaitlistUpdate{
		NotificationSent: req.NotificationSent,
		Notes:            req.Notes,
		Priority:         req.Priority,
	}

	if req.Status != nil {
		status, ok := domain.ParseWaitlistStatus(*req.Status)
		if !ok {
			s.logger.Warn("Update: invalid status=%q for waitlist id=%s", *req.Status, waitlistID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		upd.Status = &status
	}
	if req.Priority != nil && (*req.Priority < domain.MinWaitlistPriority || *req.Priority > domain.MaxWaitlistPriority) {
		s.logger.Warn("Update: invalid priority=%d for waitlist id=%s", *req.Priority, waitlistID)
		return nil, fmt.Errorf("%w: priority must be between %d and %d", ErrInvalidInput, domain.MinWaitlistPriority, domain.MaxWaitlistPriority)
	}

	if upd.IsEmpty() {
		s.logger.Warn("Update: empty update for waitlist id=%s", waitlistID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	entry, err := s.repo.Update(ctx, waitlistID, upd)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Update: waitlist id=%s not found", waitlistID)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("Update: repository error for waitlist id=%s: %v", waitlistID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: waitlist id=%s updated", waitlistID)
	return models.FromDomainEntry(entry), nil
}

// Matches возвращает ожидающих на дату в порядке приоритета.
// availableTime не фильтрует выдачу, а возвращается вызывающему как есть.
func (s *Service) Matches(ctx context.Context, club string, date time.Time, availableTime string) (*models.MatchesResponse, error) {
	s.logger.Info("Matches: club=%s, date=%s", club, date.Format(domain.DateFormat))

	if club == "" {
		s.logger.Warn("Matches: missing club parameter")
		return nil, fmt.Errorf("%w: club is required", ErrInvalidInput)
	}

	entries, err := s.repo.Matches(ctx, club, date)
	if err != nil {
		s.logger.Error("Matches: repository error for club=%s: %v", club, err)
		return nil, fmt.Errorf("%w: Matches - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Matches: found %d waiting entries for club=%s", len(entries), club)

	list := models.FromDomainEntryList(entries)
	return &models.MatchesResponse{
		AvailableDate: date.Format(domain.DateFormat),
		AvailableTime: availableTime,
		Count:         list.Count,
		Matches:       list.Entries,
	}, nil
}

// Remove удаляет запись из очереди
func (s *Service) Remove(ctx context.Context, waitlistID string) error {
	s.logger.Info("Remove: waitlist id=%s", waitlistID)

	if err := s.repo.Delete(ctx, waitlistID); err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Remove: waitlist id=%s not found", waitlistID)
			return ErrEntryNotFound
		}
		s.logger.Error("Remove: repository error for waitlist id=%s: %v", waitlistID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: waitlist id=%s removed", waitlistID)
	return nil
}
