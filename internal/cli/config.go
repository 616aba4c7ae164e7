package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	// Token, when set by flag or env, is used for every game
	Token     string
	TokenFile string
	Output    string

	// tokens maps game ID to owner token, as kept in TokenFile
	tokens map[string]string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: envOr("SHELLGAME_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("SHELLGAME_TOKEN"),
		TokenFile: envOr("SHELLGAME_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
	}
}

// LoadTokens reads the token file. A missing file means no saved games.
func (c *Config) LoadTokens() error {
	c.tokens = map[string]string{}

	data, err := os.ReadFile(c.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &c.tokens); err != nil {
		return fmt.Errorf("token file %s: %w", c.TokenFile, err)
	}
	if c.tokens == nil {
		c.tokens = map[string]string{}
	}
	return nil
}

// TokenFor returns the owner token to present for a game
func (c *Config) TokenFor(gameID string) string {
	if c.Token != "" {
		return c.Token
	}
	return c.tokens[gameID]
}

// SaveToken records a game's owner token in the token file
func (c *Config) SaveToken(gameID, token string) error {
	if c.tokens == nil {
		c.tokens = map[string]string{}
	}
	c.tokens[gameID] = token
	return c.writeTokens()
}

// ForgetToken drops a deleted game from the token file
func (c *Config) ForgetToken(gameID string) error {
	if _, ok := c.tokens[gameID]; !ok {
		return nil
	}
	delete(c.tokens, gameID)
	return c.writeTokens()
}

func (c *Config) writeTokens() error {
	data, err := yaml.Marshal(c.tokens)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.TokenFile, data, 0o600)
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".shellgame", "tokens.yaml")
	}
	return filepath.Join(home, ".shellgame", "tokens.yaml")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
