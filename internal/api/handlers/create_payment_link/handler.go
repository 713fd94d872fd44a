package create_payment_link

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
	"github.com/jimbobirecode/teemail-service/internal/service/bookings"
)

const (
	msgNotFound       = "booking not found"
	msgInvalidBooking = "booking has no payable amount"
	msgPaymentFailed  = "failed to create payment link"
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

// Handle POST /api/v1/bookings/{bookingId}/payment-link
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]

	link, err := h.service.CreatePaymentLink(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment-link - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment-link - No payable amount: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		case errors.Is(err, bookings.ErrPaymentLink):
			h.logger.Error("POST /bookings/{id}/payment-link - Stripe failure: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		default:
			h.logger.Error("POST /bookings/{id}/payment-link - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment-link - Link created: booking_id=%s, link_id=%s", bookingID, link.LinkID)
	handlers.RespondJSON(w, http.StatusCreated, link)
}
