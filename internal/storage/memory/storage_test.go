package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func newGame(id model.GameID) *model.Game {
	return &model.Game{
		ID: id,
		Round: model.Round{
			Phase:         model.PhaseResolved,
			Arrangement:   model.Arrangement{2, 0, 1},
			TokenIdentity: 1,
			RoundCount:    3,
			MaxRounds:     3,
			Outcome:       &model.Outcome{GuessedSlot: 2, ActualSlot: 2, Correct: true},
		},
		TokenHash: []byte("hash"),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) TestSaveAndGetGame() {
	game := newGame("game-1")

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game, retrieved)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, newGame("game-1"))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.Zero(s.storage.Count())
}

func (s *StorageSuite) TestGameExists() {
	exists, err := s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.False(exists)

	_ = s.storage.SaveGame(s.ctx, newGame("game-1"))

	exists, err = s.storage.GameExists(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestStoredGameIsIsolatedFromCaller() {
	game := newGame("game-1")
	_ = s.storage.SaveGame(s.ctx, game)

	// Mutating the caller's copy after saving must not leak into storage
	game.Round.Outcome.Correct = false
	game.Round.RoundCount = 99
	game.TokenHash[0] = 'X'

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(retrieved.Round.Outcome.Correct)
	s.Equal(3, retrieved.Round.RoundCount)
	s.Equal([]byte("hash"), retrieved.TokenHash)

	// Nor does mutating a retrieved copy
	retrieved.Round.Phase = model.PhaseShuffling
	again, _ := s.storage.GetGame(s.ctx, "game-1")
	s.Equal(model.PhaseResolved, again.Round.Phase)
}
