package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/pkg/dbmetrics"
	"github.com/jimbobirecode/teemail-service/pkg/psqlbuilder"
)

var waitlistColumns = []string{
	"id",
	"waitlist_id",
	"guest_email",
	"guest_name",
	"club",
	"requested_date",
	"preferred_time",
	"time_flexibility",
	"players",
	"golf_course",
	"status",
	"priority",
	"notes",
	"notification_sent",
	"notification_sent_at",
	"source",
	"opt_in_confirmed",
	"original_booking_request",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с очередью ожидания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись очереди
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist").
		Columns(
			"waitlist_id",
			"guest_email",
			"guest_name",
			"club",
			"requested_date",
			"preferred_time",
			"time_flexibility",
			"players",
			"golf_course",
			"status",
			"priority",
			"notes",
			"source",
			"opt_in_confirmed",
			"original_booking_request",
		).
		Values(
			entry.WaitlistID,
			entry.GuestEmail,
			entry.GuestName,
			entry.Club,
			entry.RequestedDate,
			entry.PreferredTime,
			string(entry.TimeFlexibility),
			entry.Players,
			entry.GolfCourse,
			string(entry.Status),
			entry.Priority,
			entry.Notes,
			entry.Source,
			entry.OptInConfirmed,
			entry.OriginalBookingRequest,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// FindActive ищет активную запись гостя (Waiting или Notified) на указанную
// дату в указанном клубе. Используется для проверки дублей перед вставкой.
func (r *Repository) FindActive(ctx context.Context, email string, date time.Time, club string) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statuses := make([]string, len(domain.ActiveWaitlistStatuses))
	for i, s := range domain.ActiveWaitlistStatuses {
		statuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist").
		Where(squirrel.Eq{
			"guest_email":    email,
			"requested_date": date,
			"club":           club,
			"status":         statuses,
		}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActive - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// ListByEmail получает записи гостя в клубе; при ненулевой дате выборка
// сужается до нее. Без даты записи идут по дате запроса (ASC), с датой -
// по времени создания (DESC), как в исходном API.
func (r *Repository) ListByEmail(ctx context.Context, email, club string, date *time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(waitlistColumns...).
		From("waitlist").
		Where(squirrel.Eq{"guest_email": email, "club": club})

	if date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"requested_date": *date}).
			OrderBy("created_at DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("requested_date ASC", "created_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Matches получает записи со статусом Waiting на освободившуюся дату.
// Порядок выдачи - по приоритету (DESC), затем по времени постановки (ASC):
// при равном приоритете очередь честная.
func (r *Repository) Matches(ctx context.Context, club string, date time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist").
		Where(squirrel.Eq{
			"club":           club,
			"requested_date": date,
			"status":         string(domain.WaitlistWaiting),
		}).
		OrderBy("priority DESC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Matches - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Matches - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Update применяет частичное обновление записи по внешнему идентификатору.
// Выставление notification_sent=true дополнительно фиксирует
// notification_sent_at.
func (r *Repository) Update(ctx context.Context, waitlistID string, upd domain.WaitlistUpdate) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("waitlist").
		Set("updated_at", squirrel.Expr("NOW()"))

	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", string(*upd.Status))
	}
	if upd.NotificationSent != nil {
		updateBuilder = updateBuilder.Set("notification_sent", *upd.NotificationSent)
		if *upd.NotificationSent {
			updateBuilder = updateBuilder.Set("notification_sent_at", squirrel.Expr("NOW()"))
		}
	}
	if upd.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *upd.Notes)
	}
	if upd.Priority != nil {
		updateBuilder = updateBuilder.Set("priority", *upd.Priority)
	}

	query, args, err := updateBuilder.
		Where(squirrel.Eq{"waitlist_id": waitlistID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// Delete удаляет запись очереди по внешнему идентификатору
func (r *Repository) Delete(ctx context.Context, waitlistID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist").
		Where(squirrel.Eq{"waitlist_id": waitlistID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func columnList() string {
	list := ""
	for i, c := range waitlistColumns {
		if i > 0 {
			list += ", "
		}
		list += c
	}
	return list
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry
	var notificationSentAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.WaitlistID,
		&e.GuestEmail,
		&e.GuestName,
		&e.Club,
		&e.RequestedDate,
		&e.PreferredTime,
		&e.TimeFlexibility,
		&e.Players,
		&e.GolfCourse,
		&e.Status,
		&e.Priority,
		&e.Notes,
		&e.NotificationSent,
		&notificationSentAt,
		&e.Source,
		&e.OptInConfirmed,
		&e.OriginalBookingRequest,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notificationSentAt.Valid {
		e.NotificationSentAt = &notificationSentAt.Time
	}

	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
