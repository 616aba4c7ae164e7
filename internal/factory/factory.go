package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/shellgame-go/internal/api/events"
	"github.com/mcoot/shellgame-go/internal/dependencies/clock"
	"github.com/mcoot/shellgame-go/internal/dependencies/random"
	"github.com/mcoot/shellgame-go/internal/services/auth"
	"github.com/mcoot/shellgame-go/internal/services/game"
	"github.com/mcoot/shellgame-go/internal/storage"
	"github.com/mcoot/shellgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/shellgame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService    *auth.Service
	GameController *game.Controller

	// Events fans game changes out to watchers
	Events *events.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Seed makes every draw reproducible when set
	Seed *uint64
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	var rnd random.Random = random.New()
	if cfg.Seed != nil {
		rnd = random.NewLocked(random.NewSeeded(*cfg.Seed))
	}

	authCfg := cfg.AuthConfig
	if authCfg.BcryptCost == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, logger *slog.Logger) *App {
	authService := auth.New(rnd, authCfg)
	gameController := game.NewController(store, authService, clk, rnd, logger)

	hubs := events.NewHubManager(logger)
	gameController.SetNotifier(events.NewBroadcaster(hubs, logger))

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		AuthService:    authService,
		GameController: gameController,
		Events:         hubs,
	}
}

// Close releases storage connections, if the backend holds any
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
