package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/shellgame-go/internal/dependencies/mocks"
	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/services/shuffle"
)

type ModelSuite struct {
	suite.Suite
	random *mocks.MockRandom
	model  Model
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}

func (s *ModelSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	engine, err := shuffle.New(s.random, 2)
	s.Require().NoError(err)
	s.model = New(engine)
}

func (s *ModelSuite) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var next tea.Model
		next, cmd = s.model.Update(msg)
		s.model = next.(Model)
	}
	return cmd
}

func (s *ModelSuite) TestInitialView() {
	s.Equal(model.PhaseNotStarted, s.model.State().Phase)

	view := s.model.View()
	s.Contains(view, "Shell Game")
	s.Contains(view, "Phase: not_started")
	s.Contains(view, "Shuffles: 0/2")
	s.Contains(view, "Press s to hide the token.")
}

func (s *ModelSuite) TestScriptedGameWin() {
	// Token 1, shuffles [2,0,1] then [1,2,0] leave it in slot 1
	s.random.QueueIntn(1, 4, 3)

	s.press("s")
	s.Equal(model.PhaseShuffling, s.model.State().Phase)

	s.press(" ")
	s.Equal(1, s.model.State().RoundCount)
	s.Contains(s.model.View(), "Shuffling...")

	s.press("enter")
	s.Equal(model.PhaseAwaitingGuess, s.model.State().Phase)
	s.Contains(s.model.View(), "Pick a cup.")

	s.press("2")
	state := s.model.State()
	s.Equal(model.PhaseResolved, state.Phase)
	s.Require().NotNil(state.Outcome)
	s.True(state.Outcome.Correct)
	s.Equal(model.Slot(1), state.Outcome.ActualSlot)

	view := s.model.View()
	s.Contains(view, "You found it!")
	s.Contains(view, "●")
}

func (s *ModelSuite) TestShuffleAllThenWrongGuessWithCursor() {
	s.random.QueueIntn(1, 4, 3)

	s.press("s", "a")
	s.Equal(model.PhaseAwaitingGuess, s.model.State().Phase)
	s.Contains(s.model.View(), "Shuffled 2 more time(s).")

	s.press("left", "left", "left")
	s.Equal(model.Slot(0), s.model.Cursor())

	s.press("enter")
	state := s.model.State()
	s.Require().NotNil(state.Outcome)
	s.False(state.Outcome.Correct)
	s.Equal(model.Slot(0), state.Outcome.GuessedSlot)
	s.Contains(s.model.View(), "The token was under cup 2.")
}

func (s *ModelSuite) TestCursorStaysInRange() {
	s.press("right", "right", "right")
	s.Equal(model.Slot(2), s.model.Cursor())
}

func (s *ModelSuite) TestTokenHiddenUntilResolved() {
	s.random.QueueIntn(1, 4, 3)

	s.press("s", "a")
	view := s.model.View()
	s.NotContains(view, "●")
	s.Contains(view, "?")
	s.Nil(s.model.State().Arrangement)
}

func (s *ModelSuite) TestRejectedMoveShowsErrorAndKeepsState() {
	s.press(" ")
	s.Equal(model.PhaseNotStarted, s.model.State().Phase)
	s.Contains(s.model.View(), "That move is not allowed right now.")

	s.press("1")
	s.Equal(model.PhaseNotStarted, s.model.State().Phase)
	s.Contains(s.model.View(), "That move is not allowed right now.")
}

func (s *ModelSuite) TestErrorClearsOnNextKey() {
	s.press(" ")
	s.Contains(s.model.View(), "not allowed")

	s.press("s")
	s.NotContains(s.model.View(), "not allowed")
}

func (s *ModelSuite) TestResetKeepsMaxRounds() {
	s.random.QueueIntn(1, 4, 3)

	s.press("s", "a", "2", "r")
	state := s.model.State()
	s.Equal(model.PhaseNotStarted, state.Phase)
	s.Equal(0, state.RoundCount)
	s.Equal(2, state.MaxRounds)
	s.Nil(state.Outcome)
}

func (s *ModelSuite) TestQuit() {
	cmd := s.press("q")
	s.Require().NotNil(cmd)
	s.IsType(tea.QuitMsg{}, cmd())
	s.Empty(s.model.View())
}

func (s *ModelSuite) TestCtrlCQuits() {
	cmd := s.press("ctrl+c")
	s.Require().NotNil(cmd)
	s.IsType(tea.QuitMsg{}, cmd())
}
