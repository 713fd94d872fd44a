package domain

import "time"

// DashboardUser учетная запись сотрудника клуба в дашборде.
// Новые пользователи заводятся с временным паролем и обязаны сменить его
// при первом входе.
type DashboardUser struct {
	ID                 int64
	Username           string
	PasswordHash       *string // bcrypt; nil до первой смены пароля
	TempPassword       *string // временный пароль в открытом виде; очищается после смены
	CustomerID         string  // идентификатор клуба, к которому привязан пользователь
	FullName           string
	IsActive           bool
	MustChangePassword bool
	LastLogin          *time.Time
	CreatedAt          time.Time
}

// MinPasswordLength минимальная длина постоянного пароля
const MinPasswordLength = 8
