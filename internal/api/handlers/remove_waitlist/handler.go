package remove_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist"
)

const msgNotFound = "waitlist entry not found"

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

// Handle DELETE /api/v1/waitlist/{waitlistId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	waitlistID := vars["waitlistId"]

	if err := h.service.Remove(r.Context(), waitlistID); err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/{id} - Entry not found: waitlist_id=%s", waitlistID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /waitlist/{id} - Failed: waitlist_id=%s, error=%v", waitlistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Entry removed: waitlist_id=%s", waitlistID)
	w.WriteHeader(http.StatusNoContent)
}
