package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// MustBoardFromFEN decodes fen and calls t.Fatal on failure.
func MustBoardFromFEN(t testing.TB, fen string) (*chess.Board, engine.Setup) {
	t.Helper()
	b, setup, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error: %v", fen, err)
	}
	return b, setup
}

// Sq parses an algebraic square such as "e4".
func Sq(s string) chess.Square {
	return chess.MustParseSquare(s)
}

// Mv parses a coordinate move such as "e2e4" or "e7e8q".
func Mv(s string) chess.Move {
	m := chess.NewMove(Sq(s[0:2]), Sq(s[2:4]))
	if len(s) == 5 {
		m.Promotion = chess.PieceTypeFromLetter(s[4])
	}
	return m
}

// Moves parses a list of coordinate moves.
func Moves(list ...string) []chess.Move {
	out := make([]chess.Move, len(list))
	for i, s := range list {
		out[i] = Mv(s)
	}
	return out
}

// PlayMoves applies moves with engine.MakeMove and calls t.Fatal on the
// first rejection. It returns the side to move afterwards.
func PlayMoves(t testing.TB, b *chess.Board, toMove chess.Colour, moves ...string) chess.Colour {
	t.Helper()
	for i, s := range moves {
		m := Mv(s)
		if p := b.PieceAt(m.From); p == nil || p.Colour() != toMove {
			t.Fatalf("move %d %s: no %s piece on %s", i+1, s, toMove, m.From)
		}
		if err := engine.MakeMove(b, m); err != nil {
			t.Fatalf("move %d %s: %v", i+1, s, err)
		}
		toMove = toMove.Opposite()
	}
	return toMove
}
