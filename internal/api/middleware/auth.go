package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/flotilla/battleship-go/internal/api/apierr"
)

// ServiceAuth creates middleware requiring the shared game-server bearer
// token. The score endpoint is not session-authenticated; this token is the
// compensating control on that trust boundary. Comparison is constant time.
func ServiceAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := bearerToken(r)
			if presented == "" || token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the bearer token from the Authorization header
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
