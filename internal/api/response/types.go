package response

import (
	"time"

	"github.com/mcoot/shellgame-go/internal/model"
)

// Outcome represents the result of a guess
type Outcome struct {
	GuessedSlot int  `json:"guessed_slot"`
	ActualSlot  int  `json:"actual_slot"`
	Correct     bool `json:"correct"`
}

// OutcomeFromModel converts a model.Outcome
func OutcomeFromModel(o model.Outcome) Outcome {
	return Outcome{
		GuessedSlot: int(o.GuessedSlot),
		ActualSlot:  int(o.ActualSlot),
		Correct:     o.Correct,
	}
}

// Snapshot is the player-visible game state. Arrangement and outcome are
// only present once the game is resolved.
type Snapshot struct {
	Phase       string   `json:"phase"`
	RoundCount  int      `json:"round_count"`
	MaxRounds   int      `json:"max_rounds"`
	Outcome     *Outcome `json:"outcome,omitempty"`
	Arrangement []int    `json:"arrangement,omitempty"`
}

// SnapshotFromModel converts a model.Snapshot
func SnapshotFromModel(s model.Snapshot) Snapshot {
	resp := Snapshot{
		Phase:      s.Phase.String(),
		RoundCount: s.RoundCount,
		MaxRounds:  s.MaxRounds,
	}
	if s.Outcome != nil {
		o := OutcomeFromModel(*s.Outcome)
		resp.Outcome = &o
	}
	if s.Arrangement != nil {
		resp.Arrangement = make([]int, 0, model.NumContainers)
		for _, id := range s.Arrangement {
			resp.Arrangement = append(resp.Arrangement, int(id))
		}
	}
	return resp
}

// Game represents a game session in API responses
type Game struct {
	ID        string    `json:"id"`
	State     Snapshot  `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GameFromModel converts a model.Game, exposing only its snapshot
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:        string(g.ID),
		State:     SnapshotFromModel(g.Round.Snapshot()),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// CreateGameResponse is returned once when a game is created
type CreateGameResponse struct {
	Game  Game   `json:"game"`
	Token string `json:"token"`
}

// ShuffleResponse is returned by the shuffle endpoint
type ShuffleResponse struct {
	State    Snapshot `json:"state"`
	Shuffles int      `json:"shuffles"`
}

// GuessResponse is returned by the guess endpoint
type GuessResponse struct {
	Outcome Outcome  `json:"outcome"`
	State   Snapshot `json:"state"`
}

// Health statuses
const (
	HealthOK          = "ok"
	HealthUnavailable = "unavailable"
)

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
