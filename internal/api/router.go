package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flotilla/battleship-go/internal/api/handler"
	"github.com/flotilla/battleship-go/internal/api/middleware"
	"github.com/flotilla/battleship-go/internal/services/score"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	ScoreService *score.Service

	// ServiceToken is the shared bearer token the game server presents on
	// score mutations. Empty disables the score endpoint entirely.
	ServiceToken string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	scoreHandler := handler.NewScoreHandler(cfg.ScoreService)

	serviceAuthMiddleware := middleware.ServiceAuth(cfg.ServiceToken)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Score routes (game-server credential, not browser sessions)
	scores := api.PathPrefix("/scores").Subrouter()
	scores.Use(serviceAuthMiddleware)
	scores.HandleFunc("/update", scoreHandler.Update).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
