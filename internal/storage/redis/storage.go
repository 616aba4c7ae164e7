package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/storage"
)

// Storage keeps each game as a JSON document under its own key.
// Any read or write of a game pushes its expiry out by GameTTL.
type Storage struct {
	client *redis.Client
	ttl    time.Duration
}

var _ storage.Storage = (*Storage)(nil)

// New connects to the server at cfg.URL and fails if it does not answer
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().DialTimeout
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = timeout

	s := NewWithClient(redis.NewClient(opts), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, ttl: cfg.GameTTL}
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping reports whether the server is reachable
func (s *Storage) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", game.ID, err)
	}
	return s.client.Set(ctx, gameKey(game.ID), data, s.ttl).Err()
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.GetEx(ctx, gameKey(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	game := new(model.Game)
	if err := json.Unmarshal(data, game); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	if err := game.Round.Validate(); err != nil {
		return nil, fmt.Errorf("corrupt game %s: %w", id, err)
	}
	return game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, gameKey(id)).Err()
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	n, err := s.client.Exists(ctx, gameKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
