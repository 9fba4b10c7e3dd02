package storage

import (
	"context"

	"github.com/flotilla/battleship-go/internal/model"
)

// Storage defines the interface for player persistence.
//
// CreatePlayer and ApplyScoreDelta carry the two concurrency obligations of
// the player table: CreatePlayer is the sole arbiter of username uniqueness
// (a duplicate race yields exactly one success), and ApplyScoreDelta
// serializes concurrent deltas per player so no update is lost.
type Storage interface {
	// CreatePlayer inserts a new player record. Returns
	// model.ErrUsernameTaken if the username already exists; the check and
	// insert are atomic.
	CreatePlayer(ctx context.Context, player *model.Player) error

	// GetPlayer looks up a player by username. Returns
	// model.ErrPlayerNotFound for unknown usernames.
	GetPlayer(ctx context.Context, username string) (*model.Player, error)

	// ApplyScoreDelta atomically adds delta to the player's score and
	// returns the resulting total. Returns model.ErrPlayerNotFound for
	// unknown usernames without creating a record.
	ApplyScoreDelta(ctx context.Context, username string, delta int64) (int64, error)

	// UpdatePassword replaces the stored password verifier.
	UpdatePassword(ctx context.Context, username string, passwordHash string) error

	// SetAdmin sets the admin flag. Role changes only flow through here,
	// never through the player-facing surfaces.
	SetAdmin(ctx context.Context, username string, isAdmin bool) error

	// ListPlayers returns all player records.
	ListPlayers(ctx context.Context) ([]*model.Player, error)
}
