package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/shellgame-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Response types (match the API)
type (
	Snapshot         = response.Snapshot
	Outcome          = response.Outcome
	Game             = response.Game
	CreateGameResult = response.CreateGameResponse
	ShuffleResult    = response.ShuffleResponse
	GuessResult      = response.GuessResponse
	HealthResult     = response.HealthResponse
)

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Snapshot:
		o.printSnapshot(v)
	case Game:
		o.printGame(v)
	case CreateGameResult:
		o.printGame(v.Game)
		fmt.Fprintf(o.w, "Token: %s\n", v.Token)
	case ShuffleResult:
		fmt.Fprintf(o.w, "Shuffled %d time(s)\n", v.Shuffles)
		o.printSnapshot(v.State)
	case GuessResult:
		o.printOutcome(v.Outcome)
		o.printCups(v.State.Arrangement)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	o.printSnapshot(g.State)
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Fprintf(o.w, "Phase: %s\n", s.Phase)
	fmt.Fprintf(o.w, "Shuffles: %d/%d\n", s.RoundCount, s.MaxRounds)
	if s.Outcome != nil {
		o.printOutcome(*s.Outcome)
	}
	o.printCups(s.Arrangement)
}

func (o *Output) printOutcome(out Outcome) {
	result := "wrong"
	if out.Correct {
		result = "correct"
	}
	fmt.Fprintf(o.w, "Guess: slot %d (%s), token was under slot %d\n", out.GuessedSlot, result, out.ActualSlot)
}

func (o *Output) printCups(arrangement []int) {
	if len(arrangement) == 0 {
		return
	}
	cups := make([]string, len(arrangement))
	for slot, id := range arrangement {
		cups[slot] = fmt.Sprintf("[%d] cup %d", slot, id)
	}
	fmt.Fprintf(o.w, "Cups: %s\n", strings.Join(cups, "  "))
}
