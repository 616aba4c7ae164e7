package shuffle

import (
	"sync"

	"github.com/mcoot/shellgame-go/internal/dependencies/random"
	"github.com/mcoot/shellgame-go/internal/model"
)

// Engine owns one game's round behind a mutex so concurrent callers never
// interleave mid-transition
type Engine struct {
	mu     sync.Mutex
	round  model.Round
	random random.Random
}

// New creates an engine in the not started phase
func New(rnd random.Random, maxRounds int) (*Engine, error) {
	if err := model.ValidateMaxRounds(maxRounds); err != nil {
		return nil, err
	}
	return &Engine{
		round:  model.NewRound(maxRounds),
		random: rnd,
	}, nil
}

// Start places the token and begins shuffling, discarding any prior game
func (e *Engine) Start() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.round = Start(e.round, e.random)
	return e.round.Snapshot()
}

// ShuffleOnce performs a single shuffle
func (e *Engine) ShuffleOnce() (model.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := ShuffleOnce(e.round, e.random)
	if err != nil {
		return e.round.Snapshot(), err
	}
	e.round = next
	return e.round.Snapshot(), nil
}

// ShuffleAll shuffles until the phase leaves shuffling and reports how many
// shuffles were applied
func (e *Engine) ShuffleAll() (model.Snapshot, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := requirePhase(e.round, model.PhaseShuffling, "shuffle"); err != nil {
		return e.round.Snapshot(), 0, err
	}
	applied := 0
	for e.round.Phase == model.PhaseShuffling {
		next, err := ShuffleOnce(e.round, e.random)
		if err != nil {
			return e.round.Snapshot(), applied, err
		}
		e.round = next
		applied++
	}
	return e.round.Snapshot(), applied, nil
}

// Guess resolves the game against the given slot
func (e *Engine) Guess(slot model.Slot) (model.Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, outcome, err := Guess(e.round, slot)
	if err != nil {
		return model.Outcome{}, err
	}
	e.round = next
	return outcome, nil
}

// Reset returns the engine to not started
func (e *Engine) Reset() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.round = Reset(e.round)
	return e.round.Snapshot()
}

// CurrentState returns a read-only snapshot of the game
func (e *Engine) CurrentState() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.round.Snapshot()
}
