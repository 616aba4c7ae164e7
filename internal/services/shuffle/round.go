// Package shuffle implements the shell game engine: a pure state machine that
// places a token under one of three cups, permutes the cups, and resolves the
// player's guess.
//
// The token is tracked by container identity, never by slot. Each shuffle
// relabels slots with a permutation p (the cup in slot s moves to slot p[s])
// and the token's slot is always recomputed as Arrangement.IndexOf(token).
//
// Transitions operate on model.Round values and return a new value; a rejected
// transition returns the input untouched alongside the error.
package shuffle

import (
	"fmt"

	"github.com/mcoot/shellgame-go/internal/dependencies/random"
	"github.com/mcoot/shellgame-go/internal/model"
)

// Start begins a fresh game from any phase. It draws the token exactly once.
func Start(r model.Round, rnd random.Random) model.Round {
	return model.Round{
		Phase:         model.PhaseShuffling,
		Arrangement:   model.IdentityArrangement(),
		TokenIdentity: model.Identity(draw(rnd, model.NumContainers)),
		RoundCount:    0,
		MaxRounds:     r.MaxRounds,
	}
}

// ShuffleOnce applies one uniformly drawn permutation to the arrangement.
// It draws exactly once and moves to awaiting guess after the final round.
func ShuffleOnce(r model.Round, rnd random.Random) (model.Round, error) {
	if err := requirePhase(r, model.PhaseShuffling, "shuffle"); err != nil {
		return r, err
	}

	next := r.Clone()
	next.Arrangement = r.Arrangement.Apply(DrawPermutation(rnd))
	next.RoundCount++
	if next.RoundCount >= next.MaxRounds {
		next.Phase = model.PhaseAwaitingGuess
	}
	return next, nil
}

// Guess resolves the round against the given slot
func Guess(r model.Round, slot model.Slot) (model.Round, model.Outcome, error) {
	if !slot.Valid() {
		return r, model.Outcome{}, fmt.Errorf("%w: got %d", model.ErrInvalidGuess, slot)
	}
	if err := requirePhase(r, model.PhaseAwaitingGuess, "guess"); err != nil {
		return r, model.Outcome{}, err
	}

	actual := r.TokenSlot()
	outcome := model.Outcome{
		GuessedSlot: slot,
		ActualSlot:  actual,
		Correct:     slot == actual,
	}

	next := r.Clone()
	next.Phase = model.PhaseResolved
	next.Outcome = &outcome
	return next, outcome, nil
}

// Reset returns the round to not started, keeping its configured max rounds
func Reset(r model.Round) model.Round {
	return model.NewRound(r.MaxRounds)
}

// DrawPermutation picks one of the six slot permutations with a single draw
func DrawPermutation(rnd random.Random) model.Permutation {
	return model.Permutations[draw(rnd, len(model.Permutations))]
}

// draw takes one value in [0, n). A source that breaks that contract would
// silently bias or corrupt the game, so it panics instead.
func draw(rnd random.Random, n int) int {
	v := rnd.Intn(n)
	if v < 0 || v >= n {
		panic(fmt.Sprintf("shuffle: random source returned %d for Intn(%d)", v, n))
	}
	return v
}

func requirePhase(r model.Round, want model.Phase, op string) error {
	if r.Phase != want {
		return fmt.Errorf("%w: %s in phase %s", model.ErrInvalidPhaseTransition, op, r.Phase)
	}
	return nil
}
