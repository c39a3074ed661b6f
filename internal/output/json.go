package output

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// JSONResult represents a replayed game in JSON format.
type JSONResult struct {
	Game       int      `json:"game"` // 1-based input line
	Result     string   `json:"result"`
	Reason     string   `json:"reason"`
	Winner     string   `json:"winner,omitempty"`
	Plies      int      `json:"plies"`
	Moves      []string `json:"moves,omitempty"`
	Repeats    int      `json:"repetitions,omitempty"` // Occurrences of the most repeated position
	InitialFEN string   `json:"initialFEN,omitempty"`
	FinalFEN   string   `json:"fen"`
	Error      string   `json:"error,omitempty"`
}

// JSONOutput holds multiple results for batch output.
type JSONOutput struct {
	Games []*JSONResult `json:"games"`
}

// ResultToJSON converts a replay result to its JSON form.
func ResultToJSON(r worker.Result) *JSONResult {
	jr := &JSONResult{
		Game:       r.Index + 1,
		Result:     r.Outcome.Score(),
		Reason:     r.Outcome.Result.String(),
		Plies:      r.Plies,
		Moves:      r.Moves,
		Repeats:    r.Repetitions,
		InitialFEN: r.InitialFEN,
		FinalFEN:   r.FEN,
	}
	if r.Outcome.Result == game.Checkmated {
		jr.Winner = strings.ToLower(r.Outcome.Winner.String())
	}
	if r.Err != nil {
		jr.Error = r.Err.Error()
	}
	return jr
}
