package game

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/shellgame-go/internal/dependencies/clock"
	"github.com/mcoot/shellgame-go/internal/dependencies/random"
	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/services/auth"
	"github.com/mcoot/shellgame-go/internal/services/shuffle"
	"github.com/mcoot/shellgame-go/internal/storage"
)

const (
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
	// GameIDAlphabet is the characters used in game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	maxIDAttempts = 10
)

// Notifier is told about every saved change so watchers can follow a game
type Notifier interface {
	GameChanged(id model.GameID, snapshot model.Snapshot)
	GameDeleted(id model.GameID)
}

type nopNotifier struct{}

func (nopNotifier) GameChanged(model.GameID, model.Snapshot) {}
func (nopNotifier) GameDeleted(model.GameID)                 {}

// Controller runs shell game sessions against storage, one lock per game
type Controller struct {
	storage     storage.Storage
	authService *auth.Service
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger
	locks       *gameLocks
	notifier    Notifier
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	authService *auth.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		storage:     storage,
		authService: authService,
		clock:       clock,
		random:      random,
		logger:      logger,
		locks:       newGameLocks(),
		notifier:    nopNotifier{},
	}
}

// SetNotifier registers the receiver of game change notifications.
// It must be called before the controller serves requests.
func (c *Controller) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	c.notifier = n
}

// CreateGame starts a new session in the not started phase and returns it
// with the owner token. The token is not retrievable afterwards.
func (c *Controller) CreateGame(ctx context.Context, maxRounds int) (*model.Game, string, error) {
	if err := model.ValidateMaxRounds(maxRounds); err != nil {
		return nil, "", err
	}

	gameID, err := c.newGameID(ctx)
	if err != nil {
		return nil, "", err
	}

	token, hash, err := c.authService.IssueToken()
	if err != nil {
		return nil, "", err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        gameID,
		Round:     model.NewRound(maxRounds),
		TokenHash: hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, "", err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.Int("max_rounds", maxRounds),
	)

	return game, token, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Snapshot returns the player-visible state of a game
func (c *Controller) Snapshot(ctx context.Context, gameID model.GameID) (model.Snapshot, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	return game.Round.Snapshot(), nil
}

// Authorize checks that token is the owner token of the game
func (c *Controller) Authorize(ctx context.Context, gameID model.GameID, token string) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	return c.authService.Verify(game.TokenHash, token)
}

// Start places the token and begins shuffling, discarding any prior round
func (c *Controller) Start(ctx context.Context, gameID model.GameID) (model.Snapshot, error) {
	var snap model.Snapshot
	err := c.update(ctx, gameID, "start", func(r model.Round) (model.Round, error) {
		next := shuffle.Start(r, c.random)
		snap = next.Snapshot()
		return next, nil
	})
	return snap, err
}

// Shuffle applies a single shuffle
func (c *Controller) Shuffle(ctx context.Context, gameID model.GameID) (model.Snapshot, error) {
	var snap model.Snapshot
	err := c.update(ctx, gameID, "shuffle", func(r model.Round) (model.Round, error) {
		next, err := shuffle.ShuffleOnce(r, c.random)
		if err != nil {
			return r, err
		}
		snap = next.Snapshot()
		return next, nil
	})
	return snap, err
}

// ShuffleAll shuffles until the game awaits a guess and reports how many
// shuffles were applied
func (c *Controller) ShuffleAll(ctx context.Context, gameID model.GameID) (model.Snapshot, int, error) {
	var snap model.Snapshot
	applied := 0
	err := c.update(ctx, gameID, "shuffle_all", func(r model.Round) (model.Round, error) {
		next, err := shuffle.ShuffleOnce(r, c.random)
		if err != nil {
			return r, err
		}
		applied++
		for next.Phase == model.PhaseShuffling {
			if next, err = shuffle.ShuffleOnce(next, c.random); err != nil {
				return r, err
			}
			applied++
		}
		snap = next.Snapshot()
		return next, nil
	})
	if err != nil {
		return model.Snapshot{}, 0, err
	}
	return snap, applied, nil
}

// Guess resolves the game against slot
func (c *Controller) Guess(ctx context.Context, gameID model.GameID, slot model.Slot) (model.Outcome, error) {
	var outcome model.Outcome
	err := c.update(ctx, gameID, "guess", func(r model.Round) (model.Round, error) {
		next, o, err := shuffle.Guess(r, slot)
		if err != nil {
			return r, err
		}
		outcome = o
		return next, nil
	})
	if err != nil {
		return model.Outcome{}, err
	}

	c.logger.Info("game resolved",
		slog.String("game_id", string(gameID)),
		slog.Int("guessed_slot", int(outcome.GuessedSlot)),
		slog.Int("actual_slot", int(outcome.ActualSlot)),
		slog.Bool("correct", outcome.Correct),
	)
	return outcome, nil
}

// Reset returns the game to not started
func (c *Controller) Reset(ctx context.Context, gameID model.GameID) (model.Snapshot, error) {
	var snap model.Snapshot
	err := c.update(ctx, gameID, "reset", func(r model.Round) (model.Round, error) {
		next := shuffle.Reset(r)
		snap = next.Snapshot()
		return next, nil
	})
	return snap, err
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	unlock := c.locks.lock(gameID)
	defer unlock()

	exists, err := c.storage.GameExists(ctx, gameID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrGameNotFound
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.notifier.GameDeleted(gameID)
	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	return nil
}

// update loads the game under its lock, applies fn and saves the result.
// Storage is left untouched when fn fails.
func (c *Controller) update(ctx context.Context, gameID model.GameID, op string, fn func(model.Round) (model.Round, error)) error {
	unlock := c.locks.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	next, err := fn(game.Round)
	if err != nil {
		c.logger.Debug("transition rejected",
			slog.String("game_id", string(gameID)),
			slog.String("op", op),
			slog.String("phase", game.Round.Phase.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	game.Round = next
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Debug("transition applied",
		slog.String("game_id", string(gameID)),
		slog.String("op", op),
		slog.String("phase", next.Phase.String()),
		slog.Int("round_count", next.RoundCount),
	)
	c.notifier.GameChanged(gameID, next.Snapshot())
	return nil
}

func (c *Controller) newGameID(ctx context.Context) (model.GameID, error) {
	for range maxIDAttempts {
		id := model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
		if id == "" {
			continue
		}
		exists, err := c.storage.GameExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.New("game: could not allocate a unique game id")
}
