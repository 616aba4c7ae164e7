package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/shellgame-go/internal/dependencies/random"
)

// ErrInvalidToken is returned when an owner token does not match its hash
var ErrInvalidToken = errors.New("invalid or missing game token")

const (
	// TokenLength is the length of issued owner tokens
	TokenLength = 32

	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Config holds configuration for the auth service
type Config struct {
	// BcryptCost is the cost used to hash owner tokens
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Service issues and verifies per-game owner tokens.
// Only the bcrypt hash of a token is ever persisted.
type Service struct {
	random random.Random
	cost   int
}

// New creates a new auth Service
func New(rnd random.Random, cfg Config) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	return &Service{
		random: rnd,
		cost:   cfg.BcryptCost,
	}
}

// IssueToken generates a fresh owner token and its hash
func (s *Service) IssueToken() (string, []byte, error) {
	token := s.random.String(TokenLength, tokenAlphabet)

	if token == "" {
		return "", nil, errors.New("auth: random source produced an empty token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return "", nil, fmt.Errorf("auth: hash token: %w", err)
	}
	return token, hash, nil
}

// Verify checks a presented token against a stored hash
func (s *Service) Verify(hash []byte, token string) error {
	if token == "" || len(hash) == 0 {
		return ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}
