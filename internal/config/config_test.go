package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/shellgame-go/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPort, EnvStorage, EnvRedisURL, EnvMaxRounds, EnvLogLevel, EnvSeed} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, model.DefaultMaxRounds, cfg.Game.DefaultMaxRounds)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "shellgame.yaml", `
server:
  port: 9090
  read_timeout: 5s
storage:
  type: redis
  redis:
    url: redis://cache:6379
    game_ttl: 2h
game:
  default_max_rounds: 7
log:
  level: debug
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, Default().Server.WriteTimeout, cfg.Server.WriteTimeout)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "redis://cache:6379", cfg.RedisStorage().URL)
	assert.Equal(t, 2*time.Hour, cfg.RedisStorage().GameTTL)
	assert.Equal(t, 7, cfg.Game.DefaultMaxRounds)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadExpandsEnvInYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHELLGAME_TEST_REDIS_HOST", "redis.internal")
	path := writeFile(t, "shellgame.yaml", `
storage:
  type: redis
  redis:
    url: redis://${SHELLGAME_TEST_REDIS_HOST}:6379
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "redis://redis.internal:6379", cfg.Storage.Redis.URL)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "shellgame.yaml", "server:\n  port: 9090\ngame:\n  default_max_rounds: 7\n")
	t.Setenv(EnvPort, "7070")
	t.Setenv(EnvMaxRounds, "12")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Game.DefaultMaxRounds)
	assert.Equal(t, 7070, cfg.APIServer().Port)
}

func TestSeed(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Nil(t, cfg.Game.Seed, "unseeded by default")

	path := writeFile(t, "shellgame.yaml", "game:\n  seed: 42\n")
	cfg, err = Load(path, "")
	require.NoError(t, err)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, uint64(42), *cfg.Game.Seed)

	t.Setenv(EnvSeed, "7")
	cfg, err = Load(path, "")
	require.NoError(t, err)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, uint64(7), *cfg.Game.Seed)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even to ""
	require.NoError(t, os.Unsetenv(EnvStorage))
	require.NoError(t, os.Unsetenv(EnvRedisURL))
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvStorage)
		_ = os.Unsetenv(EnvRedisURL)
	})
	envFile := writeFile(t, ".env", "STORAGE_TYPE=redis\nREDIS_URL=redis://from-dotenv:6379\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Type)
	assert.Equal(t, "redis://from-dotenv:6379", cfg.Storage.Redis.URL)
}

func TestMissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestMissingConfigFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestInvalidValuesRejected(t *testing.T) {
	cases := map[string]func(t *testing.T){
		"bad port env":       func(t *testing.T) { t.Setenv(EnvPort, "http") },
		"bad storage":        func(t *testing.T) { t.Setenv(EnvStorage, "sqlite") },
		"max rounds zero":    func(t *testing.T) { t.Setenv(EnvMaxRounds, "0") },
		"max rounds not int": func(t *testing.T) { t.Setenv(EnvMaxRounds, "five") },
		"bad log level":      func(t *testing.T) { t.Setenv(EnvLogLevel, "loud") },
		"negative seed":      func(t *testing.T) { t.Setenv(EnvSeed, "-1") },
	}

	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			setup(t)
			_, err := Load("", "")
			assert.Error(t, err)
		})
	}
}

func TestMalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bad.yaml", "server: [unclosed")

	_, err := Load(path, "")
	assert.Error(t, err)
}
