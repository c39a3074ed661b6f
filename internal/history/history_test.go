package history

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

const (
	start   = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"
	afterE4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3"
)

func TestRecordCounts(t *testing.T) {
	h := NewPositionHistory()

	testutil.AssertEqual(t, h.Record(start), 1)
	testutil.AssertEqual(t, h.Record(afterE4), 1)
	testutil.AssertEqual(t, h.Record(start), 2)
	testutil.AssertEqual(t, h.Record(start), 3)

	testutil.AssertEqual(t, h.Count(start), 3)
	testutil.AssertEqual(t, h.Count("unknown"), 0)
	testutil.AssertTrue(t, h.Reached(start, 3))
	testutil.AssertFalse(t, h.Reached(afterE4, 2))
}

func TestSnapshotIsIndependent(t *testing.T) {
	h := NewPositionHistory()
	h.Record(start)
	snap := h.Snapshot()
	h.Record(start)

	testutil.AssertEqual(t, snap, map[string]int{start: 1})
	testutil.AssertEqual(t, h.Count(start), 2)
}

func TestMostRepeated(t *testing.T) {
	h := NewPositionHistory()
	if key, n := h.MostRepeated(); key != "" || n != 0 {
		t.Errorf("MostRepeated() on empty history = %q, %d", key, n)
	}
	h.Record(start)
	h.Record(afterE4)
	h.Record(afterE4)
	key, n := h.MostRepeated()
	testutil.AssertEqual(t, key, afterE4)
	testutil.AssertEqual(t, n, 2)
}

func TestReset(t *testing.T) {
	h := NewPositionHistory()
	h.Record(start)
	h.Reset()

	testutil.AssertEqual(t, h.Count(start), 0)
	testutil.AssertEqual(t, h.Snapshot(), map[string]int{})
	if key, n := h.MostRepeated(); key != "" || n != 0 {
		t.Errorf("MostRepeated() after Reset = %q, %d", key, n)
	}
}

// TestKnightShuttleKeys checks that simplified FENs from the engine repeat
// exactly when the knights return home.
func TestKnightShuttleKeys(t *testing.T) {
	b, setup := testutil.MustBoardFromFEN(t, engine.InitialFEN)
	h := NewPositionHistory()
	toMove := setup.ToMove
	h.Record(engine.SimplifiedFEN(b, toMove))

	shuttle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	var counts []int
	for round := 0; round < 2; round++ {
		for _, m := range shuttle {
			toMove = testutil.PlayMoves(t, b, toMove, m)
			counts = append(counts, h.Record(engine.SimplifiedFEN(b, toMove)))
		}
	}

	testutil.AssertEqual(t, counts, []int{1, 1, 1, 2, 2, 2, 2, 3})
}
