package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/jimbobirecode/teemail-service/internal/api/handlers"
)

const msgUnauthorized = "invalid or missing API key"

// APIKey проверяет ключ сервисной аутентификации.
// Ключ принимается в заголовке X-API-Key либо как Bearer токен.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-API-Key")
			if presented == "" {
				if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
					presented = strings.TrimPrefix(authHeader, "Bearer ")
				}
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
