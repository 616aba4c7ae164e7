// Package tui renders a local shell game in the terminal.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/shellgame-go/internal/model"
)

// Engine is the subset of the shuffle engine the terminal UI drives
type Engine interface {
	Start() model.Snapshot
	ShuffleOnce() (model.Snapshot, error)
	ShuffleAll() (model.Snapshot, int, error)
	Guess(slot model.Slot) (model.Outcome, error)
	Reset() model.Snapshot
	CurrentState() model.Snapshot
}

// Model is the bubbletea model for a single local game
type Model struct {
	engine   Engine
	state    model.Snapshot
	cursor   model.Slot
	message  string
	err      error
	quitting bool
}

// New creates a model over the given engine
func New(engine Engine) Model {
	return Model{
		engine:  engine,
		state:   engine.CurrentState(),
		cursor:  1,
		message: "Press s to hide the token.",
	}
}

// State returns the snapshot the model is currently showing
func (m Model) State() model.Snapshot {
	return m.state
}

// Cursor returns the highlighted slot
func (m Model) Cursor() model.Slot {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "s":
		m.state = m.engine.Start()
		m.message = "The token is hidden. Watch the cups!"
	case " ", "space":
		m.shuffleOnce()
	case "enter":
		if m.state.Phase == model.PhaseAwaitingGuess {
			m.guess(m.cursor)
		} else {
			m.shuffleOnce()
		}
	case "a":
		state, n, err := m.engine.ShuffleAll()
		m.state = state
		if err != nil {
			m.err = err
		} else {
			m.message = fmt.Sprintf("Shuffled %d more time(s). Pick a cup.", n)
		}
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < model.NumContainers-1 {
			m.cursor++
		}
	case "1", "2", "3":
		m.cursor = model.Slot(key.Runes[0] - '1')
		m.guess(m.cursor)
	case "r":
		m.state = m.engine.Reset()
		m.message = "Press s to hide the token."
	}
	return m, nil
}

func (m *Model) shuffleOnce() {
	state, err := m.engine.ShuffleOnce()
	m.state = state
	if err != nil {
		m.err = err
		return
	}
	if state.Phase == model.PhaseAwaitingGuess {
		m.message = "Shuffling done. Pick a cup."
	} else {
		m.message = "Shuffling..."
	}
}

func (m *Model) guess(slot model.Slot) {
	outcome, err := m.engine.Guess(slot)
	if err != nil {
		m.err = err
		return
	}
	m.state = m.engine.CurrentState()
	if outcome.Correct {
		m.message = winStyle.Render("You found it!")
	} else {
		m.message = loseStyle.Render(fmt.Sprintf("Wrong cup. The token was under cup %d.", outcome.ActualSlot+1))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{
		titleStyle.Render("Shell Game"),
		statusStyle.Render(fmt.Sprintf("Phase: %s   Shuffles: %d/%d",
			m.state.Phase, m.state.RoundCount, m.state.MaxRounds)),
		"",
		m.renderCups(),
		"",
		m.message,
	}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(describeError(m.err)))
	}
	parts = append(parts, "", helpStyle.Render(m.help()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) renderCups() string {
	cups := make([]string, model.NumContainers)
	labels := make([]string, model.NumContainers)
	for i := range cups {
		slot := model.Slot(i)
		style := cupStyle
		if slot == m.cursor && m.state.Phase == model.PhaseAwaitingGuess {
			style = cupCursor
		}
		cups[i] = style.Render(m.cupContent(slot))
		labels[i] = cupLabelStyle.Render(fmt.Sprintf("%d", i+1))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cups...),
		lipgloss.JoinHorizontal(lipgloss.Top, labels...),
	)
}

// cupContent only reveals the token once the snapshot carries the outcome
func (m Model) cupContent(slot model.Slot) string {
	if m.state.Outcome == nil {
		return "?"
	}
	if slot == m.state.Outcome.ActualSlot {
		return "●"
	}
	return " "
}

func (m Model) help() string {
	keys := []string{"s start"}
	switch m.state.Phase {
	case model.PhaseShuffling:
		keys = append(keys, "space shuffle", "a shuffle all")
	case model.PhaseAwaitingGuess:
		keys = append(keys, "←/→ move", "enter guess", "1-3 guess")
	}
	keys = append(keys, "r reset", "q quit")
	return strings.Join(keys, " • ")
}

func describeError(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidPhaseTransition):
		return "That move is not allowed right now."
	case errors.Is(err, model.ErrInvalidGuess):
		return "Pick cup 1, 2 or 3."
	}
	return err.Error()
}
