package handler

import (
	"log/slog"
	"net/http"

	"github.com/flotilla/battleship-go/internal/storage"
	"github.com/flotilla/battleship-go/internal/web/middleware"
	"github.com/flotilla/battleship-go/internal/web/templates"
)

// AdminHandler handles the admin-gated player table
type AdminHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(storage storage.Storage, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		storage: storage,
		logger:  logger,
	}
}

// Players renders the player-record table. The admin gate is applied by the
// router; by the time this runs the identity is an admin.
func (h *AdminHandler) Players(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	players, err := h.storage.ListPlayers(r.Context())
	if err != nil {
		h.logger.Error("player list query failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := templates.AdminData{
		Title:    "Admin",
		Flash:    middleware.GetFlash(r.Context()),
		Username: identity.Username,
		Players:  players,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Render(w, "admin.html", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
