package inboundemail

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/pkg/dbmetrics"
	"github.com/jimbobirecode/teemail-service/pkg/psqlbuilder"
)

// Repository репозиторий входящих писем
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория писем
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListForBooking получает письма бронирования. Сопоставление двухступенчатое:
// по полю booking_id, а для еще не привязанных писем - по адресу гостя
// в from_email/to_email (ILIKE). Сортировка - от новых к старым.
func (r *Repository) ListForBooking(ctx context.Context, bookingID, guestEmail string) ([]*domain.InboundEmail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := squirrel.Or{
		squirrel.Eq{"booking_id": bookingID},
	}

	if guestEmail != "" {
		pattern := "%" + guestEmail + "%"
		conditions = append(conditions,
			squirrel.And{
				squirrel.Eq{"booking_id": nil},
				squirrel.ILike{"from_email": pattern},
			},
			squirrel.And{
				squirrel.Eq{"booking_id": nil},
				squirrel.ILike{"to_email": pattern},
			},
		)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"message_id",
		"from_email",
		"to_email",
		"subject",
		"body_text",
		"email_type",
		"booking_id",
		"processed",
		"processing_status",
		"error_message",
		"received_at",
	).
		From("inbound_emails").
		Where(conditions).
		OrderBy("received_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEmails(rows)
}

func scanEmails(rows *sql.Rows) ([]*domain.InboundEmail, error) {
	emails := make([]*domain.InboundEmail, 0)

	for rows.Next() {
		var e domain.InboundEmail

		err := rows.Scan(
			&e.ID,
			&e.MessageID,
			&e.FromEmail,
			&e.ToEmail,
			&e.Subject,
			&e.BodyText,
			&e.EmailType,
			&e.BookingID,
			&e.Processed,
			&e.ProcessingStatus,
			&e.ErrorMessage,
			&e.ReceivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEmails - scan row: %v", ErrScanRow, err)
		}

		emails = append(emails, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEmails - rows error: %v", ErrScanRow, err)
	}

	return emails, nil
}
