package sendgrid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestClient_SendTemplate(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		var got mailRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v3/mail/send", r.URL.Path)
			assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sg-key", "bookings@club.com", "Island Golf Club", time.Second, noopLogger{})
		err := c.SendTemplate(context.Background(), "guest@example.com", "d-abc123", map[string]interface{}{"guest_name": "Pat"})
		require.NoError(t, err)

		require.Len(t, got.Personalizations, 1)
		assert.Equal(t, "guest@example.com", got.Personalizations[0].To[0].Email)
		assert.Equal(t, "Pat", got.Personalizations[0].DynamicData["guest_name"])
		assert.Equal(t, "d-abc123", got.TemplateID)
		assert.Equal(t, "bookings@club.com", got.From.Email)
	})

	t.Run("bad request maps to rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"message":"template not found","field":null}]}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sg-key", "bookings@club.com", "", time.Second, noopLogger{})
		err := c.SendTemplate(context.Background(), "guest@example.com", "d-missing", nil)
		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "template not found")
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "wrong", "bookings@club.com", "", time.Second, noopLogger{})
		err := c.SendTemplate(context.Background(), "guest@example.com", "d-abc123", nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestClient_SendTemplateWithGracefulDegradation(t *testing.T) {
	t.Run("unavailable service degrades", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sg-key", "bookings@club.com", "", time.Second, noopLogger{})
		err := c.SendTemplateWithGracefulDegradation(context.Background(), "guest@example.com", "d-abc123", nil)
		assert.ErrorIs(t, err, ErrServiceDegraded)
	})

	t.Run("rejection is not degraded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "sg-key", "bookings@club.com", "", time.Second, noopLogger{})
		err := c.SendTemplateWithGracefulDegradation(context.Background(), "guest@example.com", "d-abc123", nil)
		assert.ErrorIs(t, err, ErrRejected)
		assert.NotErrorIs(t, err, ErrServiceDegraded)
	})
}
