package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/jimbobirecode/teemail-service/internal/service/bookings"
	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error

	gotBookingID string
	gotReq       *models.UpdateStatusRequest
}

func (f *fakeService) UpdateStatus(_ context.Context, bookingID string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	f.gotBookingID = bookingID
	f.gotReq = req
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, noopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/BOOK-0001/status", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeService{resp: &models.BookingResponse{BookingID: "BOOK-0001", Status: "Requested"}}
		rec := doRequest(t, svc, `{"status":"Requested","updatedBy":"staff@club.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "BOOK-0001", svc.gotBookingID)
		assert.Equal(t, "Requested", svc.gotReq.Status)
		assert.Contains(t, rec.Body.String(), `"status":"Requested"`)
	})

	t.Run("invalid transition returns conflict", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrInvalidTransition}
		rec := doRequest(t, svc, `{"status":"Booked"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown status returns bad request", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrInvalidStatus}
		rec := doRequest(t, svc, `{"status":"Flying"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrBookingNotFound}
		rec := doRequest(t, svc, `{"status":"Requested"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, `{"status":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrInternal}
		rec := doRequest(t, svc, `{"status":"Requested"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
