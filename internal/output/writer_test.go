package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

func testResults() []worker.Result {
	return []worker.Result{
		{
			Index:   0,
			Outcome: game.Outcome{Result: game.Checkmated, Winner: chess.Black},
			Plies:   4,
			Moves:   []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			FEN:     "fen-a",
		},
		{Index: 1, Outcome: game.Outcome{Result: game.Stalemated}, FEN: "fen-b"},
		{Index: 2, Plies: 2, FEN: "fen-c", Err: errors.ErrIllegalMove},
	}
}

// TestTextWriter verifies one tab separated line per result.
func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteAll(NewWriter(&buf, FormatText), testResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, lines, []string{
		"1\t0-1\tcheckmate\t4\tfen-a",
		"2\t1/2-1/2\tstalemate\t0\tfen-b",
		"3\t*\tongoing\t2\tfen-c\terror: illegal move",
	})
}

// TestJSONWriter_Batch verifies results are held until Close.
func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	for _, r := range testResults() {
		testutil.AssertNoError(t, w.WriteResult(r))
	}
	testutil.AssertEqual(t, buf.Len(), 0, "nothing written before Close")

	testutil.AssertNoError(t, w.Close())

	var doc JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &doc))
	testutil.AssertEqual(t, doc.Games, []*JSONResult{
		{Game: 1, Result: "0-1", Reason: "checkmate", Winner: "black", Plies: 4,
			Moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, FinalFEN: "fen-a"},
		{Game: 2, Result: "1/2-1/2", Reason: "stalemate", FinalFEN: "fen-b"},
		{Game: 3, Result: "*", Reason: "ongoing", Plies: 2, FinalFEN: "fen-c", Error: "illegal move"},
	})

	// A second Close has nothing left to write.
	buf.Reset()
	testutil.AssertNoError(t, w.Close())
	testutil.AssertEqual(t, buf.Len(), 0)
}

// TestJSONWriter_Single verifies one object per line.
func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSONLines)
	testutil.AssertNoError(t, w.WriteResult(testResults()[1]))
	testutil.AssertTrue(t, buf.Len() > 0, "single mode writes immediately")
	testutil.AssertNoError(t, WriteAll(w, testResults()[2:]))

	dec := json.NewDecoder(&buf)
	var games []int
	for dec.More() {
		var jr JSONResult
		testutil.AssertNoError(t, dec.Decode(&jr))
		games = append(games, jr.Game)
	}
	testutil.AssertEqual(t, games, []int{2, 3})
}

func TestJSONWriter_EmptyFlush(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, NewJSONWriter(&buf).Flush())
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestResultToJSON_DrawHasNoWinner(t *testing.T) {
	jr := ResultToJSON(worker.Result{Outcome: game.Outcome{Result: game.DrawnByRepetition}, Repetitions: 3})
	testutil.AssertEqual(t, jr.Winner, "")
	testutil.AssertEqual(t, jr.Repeats, 3)
	testutil.AssertEqual(t, jr.Reason, "threefold repetition")
	testutil.AssertEqual(t, jr.Result, "1/2-1/2")
}
