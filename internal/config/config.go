// Package config loads server configuration from an optional YAML file, an
// optional .env file and environment overrides, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mcoot/shellgame-go/internal/api"
	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/services/auth"
	redisstorage "github.com/mcoot/shellgame-go/internal/storage/redis"
)

// Environment variables that override file settings
const (
	EnvPort      = "SHELLGAME_PORT"
	EnvStorage   = "STORAGE_TYPE"
	EnvRedisURL  = "REDIS_URL"
	EnvMaxRounds = "SHELLGAME_MAX_ROUNDS"
	EnvLogLevel  = "SHELLGAME_LOG_LEVEL"
	EnvSeed      = "SHELLGAME_SEED"
)

// Config is the complete server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the session store
type StorageConfig struct {
	Type  string      `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	GameTTL      time.Duration `yaml:"game_ttl"`
}

// GameConfig holds gameplay defaults
type GameConfig struct {
	DefaultMaxRounds int `yaml:"default_max_rounds"`
	BcryptCost       int `yaml:"bcrypt_cost"`
	// Seed, when set, replays the same token draws and shuffles on every run
	Seed *uint64 `yaml:"seed"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	srv := api.DefaultServerConfig()
	rds := redisstorage.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Host:            srv.Host,
			Port:            srv.Port,
			ReadTimeout:     srv.ReadTimeout,
			WriteTimeout:    srv.WriteTimeout,
			IdleTimeout:     srv.IdleTimeout,
			ShutdownTimeout: srv.ShutdownTimeout,
		},
		Storage: StorageConfig{
			Type: "memory",
			Redis: RedisConfig{
				URL:          rds.URL,
				PoolSize:     rds.PoolSize,
				MinIdleConns: rds.MinIdleConns,
				GameTTL:      rds.GameTTL,
			},
		},
		Game: GameConfig{
			DefaultMaxRounds: model.DefaultMaxRounds,
			BcryptCost:       auth.DefaultConfig().BcryptCost,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration. Either path may be empty; a missing .env
// file is not an error, a missing YAML file is.
func Load(path, envFile string) (Config, error) {
	if envFile != "" {
		if err := loadDotEnv(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load env file: %w", err)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator's flag
		if err != nil {
			return Config{}, fmt.Errorf("config: load config: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPort, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv(EnvStorage); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Storage.Redis.URL = v
	}
	if v := os.Getenv(EnvMaxRounds); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvMaxRounds, err)
		}
		c.Game.DefaultMaxRounds = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		c.Game.Seed = &seed
	}
	return nil
}

// Validate checks that the configuration is internally consistent
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server port %d out of range", c.Server.Port)
	}
	switch c.Storage.Type {
	case "memory":
	case "redis":
		if c.Storage.Redis.URL == "" {
			return errors.New("config: storage.redis.url is required for redis storage")
		}
	default:
		return fmt.Errorf("config: unknown storage type %q", c.Storage.Type)
	}
	if err := model.ValidateMaxRounds(c.Game.DefaultMaxRounds); err != nil {
		return fmt.Errorf("config: game.default_max_rounds: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// APIServer converts the server section for api.NewServer
func (c Config) APIServer() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		ReadTimeout:     c.Server.ReadTimeout,
		WriteTimeout:    c.Server.WriteTimeout,
		IdleTimeout:     c.Server.IdleTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// RedisStorage converts the redis section for the redis storage backend
func (c Config) RedisStorage() redisstorage.Config {
	rds := redisstorage.DefaultConfig()
	rds.URL = c.Storage.Redis.URL
	rds.PoolSize = c.Storage.Redis.PoolSize
	rds.MinIdleConns = c.Storage.Redis.MinIdleConns
	rds.GameTTL = c.Storage.Redis.GameTTL
	return rds
}

// Auth returns the auth service settings
func (c Config) Auth() auth.Config {
	return auth.Config{BcryptCost: c.Game.BcryptCost}
}
