package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	bookingRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/booking"
	"github.com/jimbobirecode/teemail-service/internal/integrations/stripe"
	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	emailRepo    EmailRepository
	stripeClient StripeClient
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	emailRepo EmailRepository,
	stripeClient StripeClient,
	currency string,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		emailRepo:    emailRepo,
		stripeClient: stripeClient,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// NewServiceWithTimeProvider создает сервис с кастомным провайдером времени (для тестов)
func NewServiceWithTimeProvider(
	bookingRepo BookingRepository,
	emailRepo EmailRepository,
	stripeClient StripeClient,
	currency string,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		emailRepo:    emailRepo,
		stripeClient: stripeClient,
		currency:     currency,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List получает бронирования клуба с фильтрацией по статусам и периоду
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for club=%s, statuses=%v, preset=%q", req.Club, req.Statuses, req.Preset)

	if req.Club == "" {
		s.logger.Warn("List: missing club parameter")
		return nil, fmt.Errorf("%w: club is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter(s.timeProvider.Now())
	if err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			s.logger.Warn("List: invalid status filter for club=%s: %v", req.Club, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		s.logger.Warn("List: invalid filter for club=%s: %v", req.Club, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for club=%s: %v", req.Club, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for club=%s", len(bookings), req.Club)
	return models.FromDomainBookingList(bookings), nil
}

// Get получает бронирование по внешнему BookingID
func (s *Service) Get(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	s.logger.Info("Get: fetching booking id=%s", bookingID)

	booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Get: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Get: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched booking id=%s", bookingID)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Переход проверяется по таблице допустимых переходов воронки.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%s -> status=%s by=%s", bookingID, req.Status, req.UpdatedBy)

	newStatus, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !domain.CanTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%s", booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, req.UpdatedBy); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: update error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - update error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("UpdateStatus: refetch error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - refetch error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%s moved to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// UpdateTeeTime вручную выставляет tee time бронирования
func (s *Service) UpdateTeeTime(ctx context.Context, bookingID string, req *models.UpdateTeeTimeRequest) error {
	s.logger.Info("UpdateTeeTime: booking id=%s -> tee_time=%q", bookingID, req.TeeTime)

	teeTime := strings.TrimSpace(req.TeeTime)
	if teeTime == "" {
		s.logger.Warn("UpdateTeeTime: empty tee time for booking id=%s", bookingID)
		return fmt.Errorf("%w: teeTime is required", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateTeeTime(ctx, bookingID, teeTime); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateTeeTime: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateTeeTime: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateTeeTime - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateTeeTime: booking id=%s updated", bookingID)
	return nil
}

// UpdateNote заменяет заметку бронирования
func (s *Service) UpdateNote(ctx context.Context, bookingID string, req *models.UpdateNoteRequest) error {
	s.logger.Info("UpdateNote: booking id=%s, note length=%d", bookingID, len(req.Note))

	if len(req.Note) > domain.MaxNoteLength {
		s.logger.Warn("UpdateNote: note too long (%d) for booking id=%s", len(req.Note), bookingID)
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if err := s.bookingRepo.UpdateNote(ctx, bookingID, req.Note); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateNote: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateNote: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateNote - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateNote: booking id=%s updated", bookingID)
	return nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, bookingID string) error {
	s.logger.Info("Delete: booking id=%s", bookingID)

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%s deleted", bookingID)
	return nil
}

// GetEmails получает переписку по бронированию: письма, привязанные по
// BookingID, плюс непривязанные письма с адресом гостя.
func (s *Service) GetEmails(ctx context.Context, bookingID string) (*models.EmailListResponse, error) {
	s.logger.Info("GetEmails: fetching emails for booking id=%s", bookingID)

	booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetEmails: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetEmails: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetEmails - repository error: %v", ErrInternal, err)
	}

	emails, err := s.emailRepo.ListForBooking(ctx, bookingID, booking.GuestEmail)
	if err != nil {
		s.logger.Error("GetEmails: email repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetEmails - email repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEmails: fetched %d emails for booking id=%s", len(emails), bookingID)
	return models.FromDomainEmailList(emails), nil
}

// CreatePaymentLink создает Stripe платежную ссылку на сумму бронирования
func (s *Service) CreatePaymentLink(ctx context.Context, bookingID string) (*models.PaymentLinkResponse, error) {
	s.logger.Info("CreatePaymentLink: booking id=%s", bookingID)

	booking, err := s.bookingRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CreatePaymentLink: booking id=%s not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CreatePaymentLink: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CreatePaymentLink - repository error: %v", ErrInternal, err)
	}

	if booking.Total <= 0 {
		s.logger.Warn("CreatePaymentLink: booking id=%s has no payable total (%.2f)", bookingID, booking.Total)
		return nil, fmt.Errorf("%w: booking total must be positive", ErrInvalidInput)
	}

	link, err := s.stripeClient.CreatePaymentLink(ctx, stripe.PaymentLinkRequest{
		AmountCents: int64(math.Round(booking.Total * 100)),
		Currency:    s.currency,
		Description: fmt.Sprintf("Golf booking %s - %s, %s", booking.BookingID, domain.ClubByID(booking.Club).DisplayName, booking.Date.Format(domain.DateFormat)),
		Reference:   booking.BookingID,
	})
	if err != nil {
		s.logger.Error("CreatePaymentLink: stripe error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentLink, err)
	}

	s.logger.Info("CreatePaymentLink: created link id=%s for booking id=%s", link.ID, bookingID)
	return &models.PaymentLinkResponse{
		BookingID: booking.BookingID,
		LinkID:    link.ID,
		URL:       link.URL,
		Amount:    booking.Total,
		Currency:  s.currency,
	}, nil
}
