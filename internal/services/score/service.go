package score

import (
	"context"
	"log/slog"
	"sort"

	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/storage"
)

// Service is the score ledger. It applies signed deltas to player records on
// behalf of the game server; the store serializes concurrent deltas per
// player so none are lost.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new score Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// ApplyDelta adds delta to the player's cumulative score and returns the new
// total. Returns model.ErrValidation for an empty username and
// model.ErrPlayerNotFound for an unknown one (no record is created).
func (s *Service) ApplyDelta(ctx context.Context, username string, delta int64) (int64, error) {
	if username == "" {
		return 0, model.ErrValidation
	}

	newScore, err := s.storage.ApplyScoreDelta(ctx, username, delta)
	if err != nil {
		return 0, err
	}

	s.logger.Info("score updated",
		slog.String("username", username),
		slog.Int64("delta", delta),
		slog.Int64("new_score", newScore),
	)

	return newScore, nil
}

// Leaderboard returns all players ordered by score, highest first
func (s *Service) Leaderboard(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	// Ties break by username for a stable display order
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Username < players[j].Username
	})

	return players, nil
}
