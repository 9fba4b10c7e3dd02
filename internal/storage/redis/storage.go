package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flotilla/battleship-go/internal/model"
	"github.com/flotilla/battleship-go/internal/storage"
)

// Hash field names for the player record
const (
	fieldUsername     = "username"
	fieldPasswordHash = "password_hash"
	fieldScore        = "score"
	fieldIsAdmin      = "is_admin"
	fieldCreatedAt    = "created_at"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each player is a hash keyed by username; HSETNX on the username field is
// the uniqueness arbiter and HINCRBY serializes score deltas server-side.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	key := playerKey(player.Username)

	// One MULTI/EXEC writes the whole record, so there is no window where a
	// half-written hash blocks re-registration. HSETNX on every field keeps
	// the username field as the uniqueness arbiter: the loser of a duplicate
	// race sets nothing and clobbers nothing.
	pipe := s.client.TxPipeline()
	created := pipe.HSetNX(ctx, key, fieldUsername, player.Username)
	pipe.HSetNX(ctx, key, fieldPasswordHash, player.PasswordHash)
	pipe.HSetNX(ctx, key, fieldScore, strconv.FormatInt(player.Score, 10))
	pipe.HSetNX(ctx, key, fieldIsAdmin, boolField(player.IsAdmin))
	pipe.HSetNX(ctx, key, fieldCreatedAt, player.CreatedAt.UTC().Format(time.RFC3339Nano))
	pipe.SAdd(ctx, playerIndexKey(), player.Username)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if !created.Val() {
		return model.ErrUsernameTaken
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, username string) (*model.Player, error) {
	fields, err := s.client.HGetAll(ctx, playerKey(username)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return playerFromFields(fields)
}

func (s *Storage) ApplyScoreDelta(ctx context.Context, username string, delta int64) (int64, error) {
	key := playerKey(username)

	// Players are never deleted, so an existence check followed by HINCRBY
	// cannot lose the record in between. HINCRBY itself is atomic, so
	// concurrent deltas for the same player always sum exactly.
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrPlayerNotFound
	}

	return s.client.HIncrBy(ctx, key, fieldScore, delta).Result()
}

func (s *Storage) UpdatePassword(ctx context.Context, username string, passwordHash string) error {
	return s.setField(ctx, username, fieldPasswordHash, passwordHash)
}

func (s *Storage) SetAdmin(ctx context.Context, username string, isAdmin bool) error {
	return s.setField(ctx, username, fieldIsAdmin, boolField(isAdmin))
}

func (s *Storage) setField(ctx context.Context, username, field, value string) error {
	key := playerKey(username)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	return s.client.HSet(ctx, key, field, value).Err()
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	usernames, err := s.client.SMembers(ctx, playerIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(usernames))
	for _, username := range usernames {
		player, err := s.GetPlayer(ctx, username)
		if err != nil {
			if errors.Is(err, model.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func playerFromFields(fields map[string]string) (*model.Player, error) {
	player := &model.Player{
		Username:     fields[fieldUsername],
		PasswordHash: fields[fieldPasswordHash],
		IsAdmin:      fields[fieldIsAdmin] == "1",
	}

	if raw, ok := fields[fieldScore]; ok {
		score, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		player.Score = score
	}

	if raw, ok := fields[fieldCreatedAt]; ok {
		createdAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, err
		}
		player.CreatedAt = createdAt
	}

	return player, nil
}
