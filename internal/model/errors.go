package model

import "errors"

// Common errors used across the application
var (
	// Engine errors
	ErrInvalidPhaseTransition = errors.New("invalid phase transition")
	ErrInvalidGuess           = errors.New("invalid guess: slot must be 0, 1 or 2")
	ErrInvalidMaxRounds       = errors.New("invalid max rounds")

	// Session errors
	ErrGameNotFound = errors.New("game not found")
)
