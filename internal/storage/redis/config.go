package redis

import "time"

// Config holds Redis connection and expiry settings
type Config struct {
	// URL is a redis:// or rediss:// connection URL
	URL string

	PoolSize     int
	MinIdleConns int

	// DialTimeout bounds connecting and the startup ping
	DialTimeout time.Duration

	// GameTTL is how long a game survives without being read or written
	GameTTL time.Duration
}

// DefaultConfig returns the settings used for a local Redis
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		GameTTL:      24 * time.Hour,
	}
}
