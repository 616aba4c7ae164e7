package model

import (
	"fmt"
	"time"
)

// DefaultMaxRounds is the number of shuffles in a game unless configured otherwise
const DefaultMaxRounds = 5

// MaxRoundsLimit caps how many shuffles a single game may be configured for
const MaxRoundsLimit = 100

// GameID uniquely identifies a game session
type GameID string

// Outcome is the result of a guess, set only once a game is resolved
type Outcome struct {
	GuessedSlot Slot
	ActualSlot  Slot
	Correct     bool
}

// Round is the complete engine state of one shell game
type Round struct {
	Phase         Phase
	Arrangement   Arrangement
	TokenIdentity Identity
	RoundCount    int
	MaxRounds     int
	Outcome       *Outcome
}

// NewRound returns a not-yet-started round configured for maxRounds shuffles
func NewRound(maxRounds int) Round {
	return Round{
		Phase:       PhaseNotStarted,
		Arrangement: IdentityArrangement(),
		MaxRounds:   maxRounds,
	}
}

// TokenSlot returns the slot currently holding the token
func (r Round) TokenSlot() Slot {
	return r.Arrangement.IndexOf(r.TokenIdentity)
}

// Clone returns a deep copy so the outcome pointer is not shared
func (r Round) Clone() Round {
	if r.Outcome != nil {
		o := *r.Outcome
		r.Outcome = &o
	}
	return r
}

// Validate checks the round's invariants, e.g. after decoding from storage
func (r Round) Validate() error {
	if !r.Phase.Valid() {
		return fmt.Errorf("unknown phase %q", r.Phase)
	}
	if !r.Arrangement.IsPermutation() {
		return fmt.Errorf("arrangement %v is not a permutation", r.Arrangement)
	}
	if !r.TokenIdentity.Valid() {
		return fmt.Errorf("token identity %d out of range", r.TokenIdentity)
	}
	if err := ValidateMaxRounds(r.MaxRounds); err != nil {
		return err
	}
	if r.RoundCount < 0 {
		return fmt.Errorf("negative round count %d", r.RoundCount)
	}
	if (r.Phase == PhaseResolved) != (r.Outcome != nil) {
		return fmt.Errorf("outcome presence does not match phase %q", r.Phase)
	}
	return nil
}

// Snapshot is the read-only view of a round handed to presentation layers.
// Arrangement and token are withheld until the round is resolved.
type Snapshot struct {
	Phase       Phase
	RoundCount  int
	MaxRounds   int
	Outcome     *Outcome
	Arrangement *Arrangement
}

// Snapshot returns the caller-safe view of the round
func (r Round) Snapshot() Snapshot {
	s := Snapshot{
		Phase:      r.Phase,
		RoundCount: r.RoundCount,
		MaxRounds:  r.MaxRounds,
	}
	if r.Phase == PhaseResolved && r.Outcome != nil {
		o := *r.Outcome
		a := r.Arrangement
		s.Outcome = &o
		s.Arrangement = &a
	}
	return s
}

// Game is a persisted shell game session
type Game struct {
	ID        GameID
	Round     Round
	TokenHash []byte // bcrypt hash of the owner token

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateMaxRounds checks a configured shuffle count
func ValidateMaxRounds(n int) error {
	if n < 1 || n > MaxRoundsLimit {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidMaxRounds, n, MaxRoundsLimit)
	}
	return nil
}
