package get_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/domain"
	"github.com/jimbobirecode/teemail-service/internal/service/bookings"
	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

const (
	msgMissingClub   = "club parameter is required"
	msgInvalidFilter = "invalid filter parameters"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?club=...&status=...&preset=...&startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	club := query.Get("club")
	if club == "" {
		h.logger.Warn("GET /bookings - Missing club parameter")
		handlers.RespondBadRequest(w, msgMissingClub)
		return
	}

	req := &models.ListBookingsRequest{
		Club:     club,
		Statuses: query["status"],
		Preset:   query.Get("preset"),
	}

	// Явный период используется, когда пресет не задан
	if raw := query.Get("startDate"); raw != "" {
		start, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid startDate=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &start
	}
	if raw := query.Get("endDate"); raw != "" {
		end, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid endDate=%q", raw)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &end
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: club=%s, error=%v", club, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Listed %d bookings for club=%s", len(resp.Bookings), club)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
