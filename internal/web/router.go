package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flotilla/battleship-go/internal/services/auth"
	"github.com/flotilla/battleship-go/internal/services/score"
	"github.com/flotilla/battleship-go/internal/storage"
	"github.com/flotilla/battleship-go/internal/web/handler"
	"github.com/flotilla/battleship-go/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	ScoreService *score.Service
	Storage      storage.Storage
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.Admin(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.ScoreService, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.Storage, cfg.Logger)

	// Public routes (optional auth so logged-in callers skip the forms)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", gameHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	public.HandleFunc("/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)

	// Player routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/game", gameHandler.GamePage).Methods(http.MethodGet)

	// Admin routes (require auth + admin role)
	admin := r.NewRoute().Subrouter()
	admin.Use(flashMiddleware)
	admin.Use(adminMiddleware)
	admin.HandleFunc("/admin", adminHandler.Players).Methods(http.MethodGet)

	return r
}
