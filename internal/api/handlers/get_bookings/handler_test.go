package get_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimbobirecode/teemail-service/internal/service/bookings/models"
)

type fakeService struct {
	resp *models.BookingListResponse
	err  error

	gotReq *models.ListBookingsRequest
}

func (f *fakeService) List(_ context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	f.gotReq = req
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(svc, noopLogger{})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := &fakeService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{}}}
		rec := doRequest(t, svc, "/api/v1/bookings?club=island&status=Inquiry&status=Requested&preset=next_7_days")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.gotReq)
		assert.Equal(t, "island", svc.gotReq.Club)
		assert.Equal(t, []string{"Inquiry", "Requested"}, svc.gotReq.Statuses)
		assert.Equal(t, "next_7_days", svc.gotReq.Preset)
	})

	t.Run("explicit period parsed", func(t *testing.T) {
		svc := &fakeService{resp: &models.BookingListResponse{}}
		rec := doRequest(t, svc, "/api/v1/bookings?club=island&startDate=2026-09-01&endDate=2026-09-30")

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.gotReq.StartDate)
		require.NotNil(t, svc.gotReq.EndDate)
		assert.Equal(t, "2026-09-01", svc.gotReq.StartDate.Format("2006-01-02"))
	})

	t.Run("missing club", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, "/api/v1/bookings")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, "/api/v1/bookings?club=island&startDate=01-09-2026")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
