package waitlist_matches

import (
	"errors"
	"net/http"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist"
)

const (
	msgMissingParams = "club and date parameters are required"
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

// Handle GET /api/v1/waitlist/matches?club=...&date=...[&time=...]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	club := query.Get("club")
	rawDate := query.Get("date")
	availableTime := query.Get("time")

	if club == "" || rawDate == "" {
		h.logger.Warn("GET /waitlist/matches - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /waitlist/matches - Invalid date=%q", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp, err := h.service.Matches(r.Context(), club, date, availableTime)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("GET /waitlist/matches - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("GET /waitlist/matches - Failed: club=%s, error=%v", club, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist/matches - Found %d entries: club=%s, date=%s", resp.Count, club, rawDate)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
