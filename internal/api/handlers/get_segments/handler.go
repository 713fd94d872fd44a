package get_segments

import (
	"errors"
	"net/http"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/service/marketing"
)

const msgMissingClub = "club parameter is required"

type Handler struct {
	service MarketingService
	logger  Logger
}

func NewHandler(service MarketingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/marketing/segments?club=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	club := r.URL.Query().Get("club")

	resp, err := h.service.Segments(r.Context(), club)
	if err != nil {
		switch {
		case errors.Is(err, marketing.ErrInvalidInput):
			h.logger.Warn("GET /marketing/segments - Missing club parameter")
			handlers.RespondBadRequest(w, msgMissingClub)

		default:
			h.logger.Error("GET /marketing/segments - Failed: club=%s, error=%v", club, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /marketing/segments - Segmented %d guests: club=%s", len(resp.Guests), club)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
