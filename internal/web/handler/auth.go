package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/services/auth"
	"github.com/flotilla/battleship-go/internal/web/middleware"
	"github.com/flotilla/battleship-go/internal/web/templates"
)

// AuthHandler handles the login, registration and logout flows
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LandingPath returns where a freshly authenticated identity should go:
// admins to the admin surface, everyone else to the game.
func LandingPath(identity model.Identity) string {
	if identity.IsAdmin {
		return "/admin"
	}
	return "/game"
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	flash := middleware.GetFlash(r.Context())

	// Authenticated callers skip the form, unless a pending notice (such as
	// an admin-access rejection) needs to be shown.
	if identity := middleware.GetIdentity(r.Context()); identity != nil && flash == nil {
		http.Redirect(w, r, LandingPath(*identity), http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, templates.LoginData{
		Title: "Login",
		Flash: flash,
		Next:  r.URL.Query().Get("next"),
	})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, templates.LoginData{Title: "Login", Error: "Invalid form data"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLogin(w, r, templates.LoginData{
			Title:    "Login",
			Username: username,
			Error:    "Username and password are required.",
			Next:     next,
		})
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Never reveal which of the two fields was wrong
			h.renderLogin(w, r, templates.LoginData{
				Title:    "Login",
				Username: username,
				Error:    "Invalid username or password. Please try again.",
				Next:     next,
			})
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, session)

	if isLocalPath(next) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, LandingPath(session.Identity), http.StatusSeeOther)
}

// isLocalPath reports whether next is safe to redirect to after login. Only
// same-site paths qualify; "//host" and "/\host" are scheme-relative URLs
// that browsers resolve off-site.
func isLocalPath(next string) bool {
	if len(next) < 1 || next[0] != '/' {
		return false
	}
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return false
	}
	return true
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if identity := middleware.GetIdentity(r.Context()); identity != nil {
		http.Redirect(w, r, LandingPath(*identity), http.StatusSeeOther)
		return
	}

	h.renderRegister(w, r, templates.RegisterData{
		Title: "Register",
		Flash: middleware.GetFlash(r.Context()),
	})
}

// Register handles registration form submission. Success redirects to the
// login page; it does not start a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, templates.RegisterData{Title: "Register", Error: "Invalid form data"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameTaken):
			h.renderRegister(w, r, templates.RegisterData{
				Title:    "Register",
				Username: username,
				Error:    "Username already taken.",
			})
		case errors.Is(err, model.ErrValidation):
			h.renderRegister(w, r, templates.RegisterData{
				Title:    "Register",
				Username: username,
				Error:    "Username and password are required to play.",
			})
		default:
			h.logger.Error("registration failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	middleware.SetFlash(w, "success", "Account created! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout ends the caller's session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.EndSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// setSessionCookie scopes the cookie lifetime to the session's own expiry so
// the two cannot drift apart when the session duration is reconfigured.
func setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(session.ExpiresAt.Sub(session.CreatedAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, data templates.LoginData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, "login.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, data templates.RegisterData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, "register.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
