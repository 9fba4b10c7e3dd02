package memory

import (
	"context"
	"sync"

	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu      sync.RWMutex
	players map[string]*model.Player
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[player.Username]; exists {
		return model.ErrUsernameTaken
	}
	p := *player
	s.players[player.Username] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) ApplyScoreDelta(ctx context.Context, username string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[username]
	if !ok {
		return 0, model.ErrPlayerNotFound
	}
	player.Score += delta
	return player.Score, nil
}

func (s *Storage) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[username]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.PasswordHash = passwordHash
	return nil
}

func (s *Storage) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[username]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.IsAdmin = isAdmin
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := *player
		players = append(players, &p)
	}
	return players, nil
}
