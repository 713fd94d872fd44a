package add_waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimbobirecode/teemail-service/internal/service/waitlist"
	"github.com/jimbobirecode/teemail-service/internal/service/waitlist/models"
)

type fakeService struct {
	resp *models.EntryResponse
	err  error

	gotReq *models.AddEntryRequest
}

func (f *fakeService) Add(_ context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error) {
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

	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitlist", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeService{resp: &models.EntryResponse{
			WaitlistID: "WL-20260828093015-a1b2c3d4",
			GuestEmail: "guest@example.com",
			Status:     "Waiting",
		}}
		rec := doRequest(t, svc, `{"guestEmail":"guest@example.com","club":"island","requestedDate":"2026-09-10"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "guest@example.com", svc.gotReq.GuestEmail)
		assert.Contains(t, rec.Body.String(), "WL-20260828093015-a1b2c3d4")
	})

	t.Run("duplicate returns conflict", func(t *testing.T) {
		svc := &fakeService{err: waitlist.ErrDuplicateEntry}
		rec := doRequest(t, svc, `{"guestEmail":"guest@example.com","club":"island","requestedDate":"2026-09-10"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing fields return bad request", func(t *testing.T) {
		svc := &fakeService{err: waitlist.ErrInvalidInput}
		rec := doRequest(t, svc, `{"club":"island"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, &fakeService{}, `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
