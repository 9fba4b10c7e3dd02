// Package templates renders the HTML pages for the player and admin
// surfaces. Pages are embedded at build time and parsed once at init.
package templates

import (
	"embed"
	"html/template"
	"io"

	"github.com/flotilla/battleship-go/internal/model"
)

//go:embed pages/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "pages/*.html"))

// Flash is a one-shot notice carried across a redirect
type Flash struct {
	Type    string // "success", "error", "info"
	Message string
}

// LoginData is the data for the login page
type LoginData struct {
	Title    string
	Flash    *Flash
	Username string // echoed back on failure; the password never is
	Error    string
	Next     string
}

// RegisterData is the data for the registration page
type RegisterData struct {
	Title    string
	Flash    *Flash
	Username string
	Error    string
}

// GameData is the data for the player landing page
type GameData struct {
	Title    string
	Flash    *Flash
	Username string
}

// LeaderboardData is the data for the leaderboard page
type LeaderboardData struct {
	Title   string
	Flash   *Flash
	Players []*model.Player
}

// AdminData is the data for the admin player table
type AdminData struct {
	Title    string
	Flash    *Flash
	Username string
	Players  []*model.Player
}

// Render writes the named page template with the given data
func Render(w io.Writer, name string, data any) error {
	return pages.ExecuteTemplate(w, name, data)
}
