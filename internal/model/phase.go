package model

// Phase is the current stage of a shell game
type Phase string

const (
	PhaseNotStarted    Phase = "not_started"    // No token placed yet
	PhaseShuffling     Phase = "shuffling"      // Token placed, cups being shuffled
	PhaseAwaitingGuess Phase = "awaiting_guess" // Shuffling done, waiting for the player
	PhaseResolved      Phase = "resolved"       // Guess made, outcome revealed
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	switch p {
	case PhaseNotStarted, PhaseShuffling, PhaseAwaitingGuess, PhaseResolved:
		return true
	}
	return false
}
