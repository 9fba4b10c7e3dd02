package handler

import (
	"log/slog"
	"net/http"

	"github.com/flotilla/battleship-go/internal/services/score"
	"github.com/flotilla/battleship-go/internal/web/middleware"
	"github.com/flotilla/battleship-go/internal/web/templates"
)

// GameHandler handles the player landing page and the leaderboard
type GameHandler struct {
	scoreService *score.Service
	logger       *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(scoreService *score.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		scoreService: scoreService,
		logger:       logger,
	}
}

// Home routes the root path by session state: authenticated callers go to
// their landing surface, everyone else to login.
func (h *GameHandler) Home(w http.ResponseWriter, r *http.Request) {
	if identity := middleware.GetIdentity(r.Context()); identity != nil {
		http.Redirect(w, r, LandingPath(*identity), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// GamePage renders the player landing page
func (h *GameHandler) GamePage(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	data := templates.GameData{
		Title:    "Game",
		Flash:    middleware.GetFlash(r.Context()),
		Username: identity.Username,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, "game.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Leaderboard renders all players ordered by score
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := h.scoreService.Leaderboard(r.Context())
	if err != nil {
		h.logger.Error("leaderboard query failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := templates.LeaderboardData{
		Title:   "Leaderboard",
		Flash:   middleware.GetFlash(r.Context()),
		Players: players,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, "leaderboard.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
