package fix_tee_times

import (
	"context"
	"fmt"

	"github.com/jimbobirecode/teemail-service/internal/teetime"
)

// UseCase use case массового восстановления tee time.
// Исторически email-бот писал время только в selected_tee_times или в текст
// заметки; проход вытаскивает его оттуда в колонку tee_time.
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет проход по бронированиям клуба без tee time.
// Выборка и обновления идут в одной транзакции, чтобы конкурирующие
// прогоны не обрабатывали одни и те же строки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FixTeeTimes: starting pass for club=%s", req.Club)

	if req.Club == "" {
		uc.logger.Warn("FixTeeTimes: missing club parameter")
		return nil, fmt.Errorf("%w: club is required", ErrInvalidInput)
	}

	result := &Response{}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.ListMissingTeeTime(txCtx, req.Club)
		if err != nil {
			uc.logger.Error("FixTeeTimes: failed to list bookings for club=%s: %v", req.Club, err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		result.Scanned = len(bookings)

		for _, b := range bookings {
			var structured interface{}
			if b.SelectedTeeTimes != nil {
				structured = *b.SelectedTeeTimes
			}
			note := ""
			if b.Note != nil {
				note = *b.Note
			}

			resolved := teetime.Resolve("", structured, note)
			if resolved == teetime.NotSpecified {
				uc.logger.Info("FixTeeTimes: no tee time recoverable for booking id=%s", b.BookingID)
				result.Unresolved++
				continue
			}

			if err := uc.bookingRepo.UpdateTeeTime(txCtx, b.BookingID, resolved); err != nil {
				uc.logger.Error("FixTeeTimes: failed to update booking id=%s: %v", b.BookingID, err)
				return fmt.Errorf("%w: failed to update booking %s: %v", ErrInternal, b.BookingID, err)
			}

			uc.logger.Info("FixTeeTimes: booking id=%s tee time set to %q", b.BookingID, resolved)
			result.Updated++
			result.UpdatedIDs = append(result.UpdatedIDs, b.BookingID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("FixTeeTimes: club=%s done, scanned=%d, updated=%d, unresolved=%d",
		req.Club, result.Scanned, result.Updated, result.Unresolved)
	return result, nil
}
