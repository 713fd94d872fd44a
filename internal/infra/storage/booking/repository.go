package booking

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

// bookingColumns полный набор колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_id",
	"guest_email",
	"club",
	"date",
	"tee_time",
	"players",
	"total",
	"status",
	"note",
	"golf_courses",
	"selected_tee_times",
	"hotel_required",
	"hotel_checkin",
	"hotel_checkout",
	"timestamp",
	"customer_confirmed_at",
	"updated_at",
	"updated_by",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBookingID получает бронирование по внешнему идентификатору
func (r *Repository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListWithFilter получает бронирования клуба с фильтрацией по статусам и
// периоду дат игры. Сортировка - по времени поступления запроса (DESC).
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"club": filter.Club}).
		OrderBy("timestamp DESC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statuses})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByTeeDate получает бронирования клуба на конкретную дату игры
// с указанным статусом. Используется планировщиком рассылок.
func (r *Repository) ListByTeeDate(ctx context.Context, club string, date time.Time, status domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"club": club, "date": date, "status": string(status)}).
		OrderBy("timestamp ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeeDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeeDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListMissingTeeTime получает бронирования клуба, у которых tee_time пуст
// или содержит заглушку. Если вызов происходит в транзакции, строки
// блокируются FOR UPDATE - для безопасного массового доисправления.
func (r *Repository) ListMissingTeeTime(ctx context.Context, club string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"club": club}).
		Where(squirrel.Or{
			squirrel.Eq{"tee_time": nil},
			squirrel.Eq{"tee_time": ""},
			squirrel.Eq{"tee_time": "Not Specified"},
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListMissingTeeTime - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMissingTeeTime - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GuestActivity агрегирует активность гостей клуба: число запросов и число
// бронирований, дошедших до Booked. Используется маркетинговой сегментацией.
func (r *Repository) GuestActivity(ctx context.Context, club string) ([]domain.GuestActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"guest_email",
		"COUNT(*) AS inquiries",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s') AS booked", domain.StatusBooked),
		fmt.Sprintf("COALESCE(SUM(total) FILTER (WHERE status = '%s'), 0) AS total_spent", domain.StatusBooked),
	).
		From("bookings").
		Where(squirrel.Eq{"club": club}).
		GroupBy("guest_email").
		OrderBy("booked DESC, inquiries DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GuestActivity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GuestActivity - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	activities := make([]domain.GuestActivity, 0)
	for rows.Next() {
		var a domain.GuestActivity
		if err := rows.Scan(&a.GuestEmail, &a.Inquiries, &a.Booked, &a.TotalSpent); err != nil {
			return nil, fmt.Errorf("%w: GuestActivity - scan row: %v", ErrScanRow, err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GuestActivity - rows error: %v", ErrScanRow, err)
	}

	return activities, nil
}

// UpdateStatus обновляет статус бронирования с фиксацией автора изменения
func (r *Repository) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus, updatedBy string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("updated_by", updatedBy).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// UpdateTeeTime обновляет tee_time бронирования
func (r *Repository) UpdateTeeTime(ctx context.Context, bookingID string, teeTime string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("tee_time", teeTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateTeeTime - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateTeeTime", query, args)
}

// UpdateNote обновляет заметку бронирования
func (r *Repository) UpdateNote(ctx context.Context, bookingID string, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateNote - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateNote", query, args)
}

// Delete удаляет бронирование (физическое удаление, использовать осторожно)
func (r *Repository) Delete(ctx context.Context, bookingID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

// execExpectingRow выполняет запрос, требующий ровно одной затронутой строки
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var updatedAt sql.NullTime
	var createdAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingID,
		&b.GuestEmail,
		&b.Club,
		&b.Date,
		&b.TeeTime,
		&b.Players,
		&b.Total,
		&b.Status,
		&b.Note,
		&b.GolfCourses,
		&b.SelectedTeeTimes,
		&b.HotelRequired,
		&b.HotelCheckin,
		&b.HotelCheckout,
		&b.Timestamp,
		&b.CustomerConfirmedAt,
		&updatedAt,
		&b.UpdatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt.Valid {
		b.UpdatedAt = &updatedAt.Time
	}
	b.CreatedAt = createdAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
