package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/flotilla/battleship-go/internal/dependencies/clock"
	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// dummyHash is a valid bcrypt verifier compared against when the username is
// unknown, so a missing user costs the same as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Session binds a token to an authenticated identity. The role is a snapshot
// taken at login and is not re-read from the store per request.
type Session struct {
	Token     string
	Identity  model.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles credentials and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a new player account with score 0 and a regular role.
// It does not start a session; login is a separate step.
func (s *Service) Register(ctx context.Context, username, password string) (*model.Player, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, model.ErrValidation
	}
	if len(username) > model.MaxUsernameLength {
		return nil, model.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		Username:     username,
		PasswordHash: string(hash),
		Score:        0,
		IsAdmin:      false,
		CreatedAt:    s.clock.Now(),
	}

	// The store arbitrates the uniqueness race; a concurrent duplicate
	// surfaces here as model.ErrUsernameTaken.
	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// Login verifies credentials and starts a session on success. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)

	player, err := s.storage.GetPlayer(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			// Burn a compare so the miss is indistinguishable from a
			// wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.StartSession(player), nil
}

// StartSession allocates a session for a player, snapshotting the role
func (s *Service) StartSession(player *model.Player) *Session {
	now := s.clock.Now()

	session := &Session{
		Token: generateToken(),
		Identity: model.Identity{
			Username: player.Username,
			IsAdmin:  player.IsAdmin,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// EndSession invalidates a session unconditionally, idempotent if absent
func (s *Service) EndSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// ValidateSession resolves a token to its session, or ErrInvalidSession if
// the token is unknown or expired
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// EnsureAdmin creates the bootstrap admin record if no player with that
// username exists yet. Idempotent: an existing record is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.storage.GetPlayer(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	player := &model.Player{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		// Lost a bootstrap race to another instance; the record exists
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil
		}
		return err
	}
	return nil
}

// SetPassword replaces a player's password verifier. This is an operator
// action; it does not invalidate the player's existing sessions.
func (s *Service) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return model.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.storage.UpdatePassword(ctx, username, string(hash))
}

// generateToken generates a random url-safe session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
