package update_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

const (
	msgInvalidBody = "invalid request body"
	msgNotFound    = "waitlist entry not found"
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

// Handle PATCH /api/v1/waitlist/{waitlistId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	waitlistID := vars["waitlistId"]

	var req models.UpdateEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /waitlist/{id} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	entry, err := h.service.Update(r.Context(), waitlistID, &req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("PATCH /waitlist/{id} - Entry not found: waitlist_id=%s", waitlistID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("PATCH /waitlist/{id} - Invalid input: waitlist_id=%s, error=%v", waitlistID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /waitlist/{id} - Failed: waitlist_id=%s, error=%v", waitlistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /waitlist/{id} - Entry updated: waitlist_id=%s", waitlistID)
	handlers.RespondJSON(w, http.StatusOK, entry)
}
