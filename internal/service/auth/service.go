package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jimbobirecode/teemail-service/internal/domain"
	userRepo "github.com/jimbobirecode/teemail-service/internal/infra/storage/dashuser"
	"github.com/jimbobirecode/teemail-service/internal/service/auth/models"
)

// Service сервис аутентификации сотрудников дашборда
type Service struct {
	users  UserRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(users UserRepository, logger Logger) *Service {
	return &Service{
		users:  users,
		logger: logger,
	}
}

// Login проверяет пару логин/пароль.
// Пока пользователь не сменил временный пароль, вход выполняется по нему
// и в ответе выставляется MustChangePassword; после смены работает только
// bcrypt-хеш постоянного пароля.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	s.logger.Info("Login: attempt for username=%s", username)

	if username == "" || req.Password == "" {
		s.logger.Warn("Login: missing username or password")
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !user.IsActive {
		s.logger.Warn("Login: disabled account username=%s", username)
		return nil, ErrAccountDisabled
	}

	if !s.verifyPassword(user, req.Password) {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return nil, ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		// Не валим вход из-за ошибки обновления last_login
		s.logger.Error("Login: failed to touch last_login for username=%s: %v", username, err)
	}

	s.logger.Info("Login: success for username=%s, mustChangePassword=%t", username, user.MustChangePassword)
	return models.FromDomainUser(user), nil
}

// verifyPassword сверяет пароль по активному пути: временному или постоянному
func (s *Service) verifyPassword(user *domain.DashboardUser, password string) bool {
	if user.MustChangePassword && user.TempPassword != nil {
		return subtle.ConstantTimeCompare([]byte(*user.TempPassword), []byte(password)) == 1
	}

	if user.PasswordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) == nil
}

// ChangePassword меняет пароль на постоянный.
// Текущий пароль проверяется тем же путем, что и при входе; временный
// пароль после смены очищается.
func (s *Service) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	username := strings.TrimSpace(req.Username)
	s.logger.Info("ChangePassword: request for username=%s", username)

	if username == "" || req.CurrentPassword == "" {
		s.logger.Warn("ChangePassword: missing username or current password")
		return fmt.Errorf("%w: username and currentPassword are required", ErrInvalidInput)
	}
	if len(req.NewPassword) < domain.MinPasswordLength {
		s.logger.Warn("ChangePassword: new password too short for username=%s", username)
		return fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, domain.MinPasswordLength)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("ChangePassword: unknown username=%s", username)
			return ErrInvalidCredentials
		}
		s.logger.Error("ChangePassword: repository error for username=%s: %v", username, err)
		return fmt.Errorf("%w: ChangePassword - repository error: %v", ErrInternal, err)
	}

	if !user.IsActive {
		s.logger.Warn("ChangePassword: disabled account username=%s", username)
		return ErrAccountDisabled
	}
	if !s.verifyPassword(user, req.CurrentPassword) {
		s.logger.Warn("ChangePassword: wrong current password for username=%s", username)
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("ChangePassword: hashing failed for username=%s: %v", username, err)
		return fmt.Errorf("%w: ChangePassword - hashing failed: %v", ErrInternal, err)
	}

	if err := s.users.SetPermanentPassword(ctx, user.ID, string(hash)); err != nil {
		s.logger.Error("ChangePassword: update failed for username=%s: %v", username, err)
		return fmt.Errorf("%w: ChangePassword - update failed: %v", ErrInternal, err)
	}

	s.logger.Info("ChangePassword: password updated for username=%s", username)
	return nil
}
