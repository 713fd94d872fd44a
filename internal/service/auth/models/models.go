package models

import "github.com/jimbobirecode/teemail-service/internal/domain"

// LoginRequest запрос входа в дашборд
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse результат успешного входа
type LoginResponse struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName,omitempty"`
	CustomerID string `json:"customerId"`

	// MustChangePassword требует смены временного пароля до работы с дашбордом
	MustChangePassword bool `json:"mustChangePassword"`
}

// ChangePasswordRequest запрос смены пароля
type ChangePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// FromDomainUser собирает ответ входа из domain модели
func FromDomainUser(u *domain.DashboardUser) *LoginResponse {
	if u == nil {
		return nil
	}

	return &LoginResponse{
		Username:           u.Username,
		FullName:           u.FullName,
		CustomerID:         u.CustomerID,
		MustChangePassword: u.MustChangePassword,
	}
}
