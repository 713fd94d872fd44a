package change_password

import (
	"errors"
	"net/http"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/service/auth"
	"github.com/jimbobirecode/teemail-service/internal/service/auth/models"
)

const (
	msgInvalidBody        = "invalid request body"
	msgInvalidCredentials = "invalid username or password"
	msgWeakPassword       = "password is too short"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/password
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/password - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.ChangePassword(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrAccountDisabled):
			h.logger.Warn("POST /auth/password - Rejected: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, auth.ErrWeakPassword):
			h.logger.Warn("POST /auth/password - Weak password: username=%s", req.Username)
			handlers.RespondBadRequest(w, msgWeakPassword)

		case errors.Is(err, auth.ErrInvalidInput):
			h.logger.Warn("POST /auth/password - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /auth/password - Failed: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/password - Password changed: username=%s", req.Username)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
