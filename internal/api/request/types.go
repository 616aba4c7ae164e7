package request

// CreateGameRequest is the request body for creating a game.
// A nil MaxRounds means the server default.
type CreateGameRequest struct {
	MaxRounds *int `json:"max_rounds,omitempty"`
}

// GuessRequest is the request body for guessing a slot
type GuessRequest struct {
	Slot *int `json:"slot"`
}
