package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/services/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session"

// GetIdentity retrieves the authenticated identity from the request context.
// Returns nil if no identity is authenticated.
func GetIdentity(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(identityContextKey).(*model.Identity)
	return identity
}

// Auth returns middleware that requires an authenticated session.
// Unauthenticated requests are redirected to the login page.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return gate(authService, false)
}

// Admin returns middleware that requires an authenticated admin session.
// Authenticated non-admins get a flash notice and a redirect to login; the
// response never reveals whether the requested resource exists.
func Admin(authService *auth.Service) func(http.Handler) http.Handler {
	return gate(authService, true)
}

func gate(authService *auth.Service, requireAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := authService.Check(sessionToken(r), requireAdmin)

			switch decision.Outcome {
			case auth.Proceed:
				ctx := context.WithValue(r.Context(), identityContextKey, &decision.Identity)
				next.ServeHTTP(w, r.WithContext(ctx))

			case auth.Deny:
				SetFlash(w, "error", decision.Message)
				http.Redirect(w, r, "/login", http.StatusSeeOther)

			default: // auth.RedirectToLogin
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			}
		})
	}
}

// OptionalAuth resolves the session if present but doesn't require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := authService.Check(sessionToken(r), false)
			if decision.Outcome == auth.Proceed {
				ctx := context.WithValue(r.Context(), identityContextKey, &decision.Identity)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
