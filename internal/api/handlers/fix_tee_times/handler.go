package fix_tee_times

import (
	"errors"
	"net/http"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	usecase "github.com/jimbobirecode/teemail-service/internal/usecase/fix_tee_times"
)

const msgMissingClub = "club parameter is required"

type Handler struct {
	useCase FixTeeTimesUseCase
	logger  Logger
}

func NewHandler(useCase FixTeeTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/fix-tee-times?club=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	club := r.URL.Query().Get("club")

	resp, err := h.useCase.Execute(r.Context(), &usecase.Request{Club: club})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("POST /bookings/fix-tee-times - Missing club parameter")
			handlers.RespondBadRequest(w, msgMissingClub)

		default:
			h.logger.Error("POST /bookings/fix-tee-times - Failed: club=%s, error=%v", club, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/fix-tee-times - Done: club=%s, updated=%d of %d", club, resp.Updated, resp.Scanned)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
