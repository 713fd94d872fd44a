package dashuser

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/pkg/dbmetrics"
	"github.com/jimbobirecode/teemail-service/pkg/psqlbuilder"
)

// Repository репозиторий пользователей дашборда
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUsername получает пользователя по логину
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.DashboardUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"username",
		"password_hash",
		"temp_password",
		"customer_id",
		"full_name",
		"is_active",
		"must_change_password",
		"last_login",
		"created_at",
	).
		From("dashboard_users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.DashboardUser
	var lastLogin, createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.TempPassword,
		&u.CustomerID,
		&u.FullName,
		&u.IsActive,
		&u.MustChangePassword,
		&lastLogin,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - scan user: %v", ErrScanRow, err)
	}

	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	u.CreatedAt = createdAt.Time

	return &u, nil
}

// SetPermanentPassword сохраняет постоянный пароль, очищает временный и
// снимает флаг обязательной смены; заодно фиксирует вход
func (r *Repository) SetPermanentPassword(ctx context.Context, userID int64, passwordHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dashboard_users").
		Set("password_hash", passwordHash).
		Set("temp_password", nil).
		Set("must_change_password", false).
		Set("last_login", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPermanentPassword - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPermanentPassword - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPermanentPassword - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// TouchLastLogin обновляет отметку последнего входа
func (r *Repository) TouchLastLogin(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("dashboard_users").
		Set("last_login", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TouchLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: TouchLastLogin - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
