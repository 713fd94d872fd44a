package mailer

import (
	"context"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/config"
	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/internal/teetime"
)

// Runner периодически рассылает шаблонные письма гостям со статусом Booked.
// Каждый шаблон привязан к смещению от даты игры: письмо шаблона с
// offset_days = -2 уходит за два дня до игры, с offset_days = 1 на
// следующий день после нее.
type Runner struct {
	cfg          config.MailerConfig
	bookingRepo  BookingRepository
	mailClient   MailClient
	timeProvider TimeProvider
	logger       Logger
}

// NewRunner создает новый экземпляр рассыльщика
func NewRunner(cfg config.MailerConfig, bookingRepo BookingRepository, mailClient MailClient, logger Logger) *Runner {
	return &Runner{
		cfg:          cfg,
		bookingRepo:  bookingRepo,
		mailClient:   mailClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// NewRunnerWithTimeProvider создает рассыльщик с кастомным провайдером времени (для тестов)
func NewRunnerWithTimeProvider(cfg config.MailerConfig, bookingRepo BookingRepository, mailClient MailClient, timeProvider TimeProvider, logger Logger) *Runner {
	return &Runner{
		cfg:          cfg,
		bookingRepo:  bookingRepo,
		mailClient:   mailClient,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Start запускает цикл рассылки до закрытия stopCh.
// Первый проход выполняется сразу при старте.
func (r *Runner) Start(ctx context.Context, stopCh <-chan struct{}) {
	interval := time.Duration(r.cfg.IntervalHours) * time.Hour
	r.logger.Info("Mailer: started for club=%s, interval=%s, templates=%d",
		r.cfg.Club, interval, len(r.cfg.Templates))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			r.RunOnce(ctx)
		case <-stopCh:
			r.logger.Info("Mailer: stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Mailer: context cancelled")
			return
		}
	}
}

// RunOnce выполняет один проход по всем шаблонам
func (r *Runner) RunOnce(ctx context.Context) {
	today := r.timeProvider.Now().Truncate(24 * time.Hour)

	for _, tpl := range r.cfg.Templates {
		// Дата игры, для которой сегодня наступил день отправки
		targetDate := today.AddDate(0, 0, -tpl.OffsetDays)
		r.sendTemplate(ctx, tpl, targetDate)
	}
}

func (r *Runner) sendTemplate(ctx context.Context, tpl config.MailerTemplate, teeDate time.Time) {
	r.logger.Info("Mailer: template=%s, tee date=%s", tpl.Name, teeDate.Format(domain.DateFormat))

	bookings, err := r.bookingRepo.ListByTeeDate(ctx, r.cfg.Club, teeDate, domain.StatusBooked)
	if err != nil {
		r.logger.Error("Mailer: failed to list bookings for template=%s: %v", tpl.Name, err)
		return
	}

	sent := 0
	for _, b := range bookings {
		if err := r.mailClient.SendTemplateWithGracefulDegradation(ctx, b.GuestEmail, tpl.TemplateID, r.dynamicData(b)); err != nil {
			r.logger.Error("Mailer: failed to send template=%s to=%s (booking id=%s): %v",
				tpl.Name, b.GuestEmail, b.BookingID, err)
			continue
		}
		sent++
	}

	r.logger.Info("Mailer: template=%s done, sent=%d of %d", tpl.Name, sent, len(bookings))
}

// dynamicData собирает данные шаблона из бронирования и справочника клуба
func (r *Runner) dynamicData(b *domain.Booking) map[string]interface{} {
	club := domain.ClubByID(b.Club)

	direct := ""
	if b.TeeTime != nil {
		direct = *b.TeeTime
	}
	var structured interface{}
	if b.SelectedTeeTimes != nil {
		structured = *b.SelectedTeeTimes
	}
	note := ""
	if b.Note != nil {
		note = *b.Note
	}

	return map[string]interface{}{
		"booking_id": b.BookingID,
		"date":       b.Date.Format(domain.DateFormat),
		"tee_time":   teetime.Resolve(direct, structured, note),
		"players":    b.Players,
		"club_name":  club.DisplayName,
		"club_phone": club.Phone,
		"club_email": club.Email,
	}
}
