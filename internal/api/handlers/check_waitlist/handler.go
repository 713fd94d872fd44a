package check_waitlist

import (
	"errors"
	"net/http"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist"
)

const (
	msgMissingParams = "email and club parameters are required"
	msgInvalidDate   = "date must be YYYY-MM-DD"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/waitlist/check?email=...&club=...&date=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := query.Get("email")
	club := query.Get("club")

	var date *time.Time
	if raw := query.Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /waitlist/check - Invalid date=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = &parsed
	}

	resp, err := h.service.Check(r.Context(), email, club, date)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("GET /waitlist/check - Missing parameters")
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("GET /waitlist/check - Failed: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist/check - email=%s, on_waitlist=%t", email, resp.OnWaitlist)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
