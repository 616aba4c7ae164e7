package storage

import (
	"context"

	"github.com/mcoot/shellgame-go/internal/model"
)

// Storage persists game sessions by ID. GetGame returns
// model.ErrGameNotFound for an unknown or expired game; deleting a
// missing game is not an error.
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// Ping reports whether the backend can serve requests
	Ping(ctx context.Context) error
}
