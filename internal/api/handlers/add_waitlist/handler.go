package add_waitlist

import (
	"errors"
	"net/http"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

const (
	msgInvalidBody = "invalid request body"
	msgDuplicate   = "guest is already on the waitlist for this date"
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

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	entry, err := h.service.Add(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrDuplicateEntry):
			h.logger.Warn("POST /waitlist - Duplicate entry: email=%s, date=%s", req.GuestEmail, req.RequestedDate)
			handlers.RespondConflict(w, msgDuplicate)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /waitlist - Failed to add entry: email=%s, error=%v", req.GuestEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Entry created: waitlist_id=%s, email=%s", entry.WaitlistID, entry.GuestEmail)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
