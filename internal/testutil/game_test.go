package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

func TestMv(t *testing.T) {
	tests := []struct {
		text string
		want chess.Move
	}{
		{"e2e4", chess.NewMove(chess.Sq(4, 1), chess.Sq(4, 3))},
		{"a7a8q", chess.Move{From: chess.Sq(0, 6), To: chess.Sq(0, 7), Promotion: chess.Queen}},
		{"h2h1n", chess.Move{From: chess.Sq(7, 1), To: chess.Sq(7, 0), Promotion: chess.Knight}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			AssertEqual(t, Mv(tt.text), tt.want)
		})
	}
}

func TestPlayMoves(t *testing.T) {
	b, setup := MustBoardFromFEN(t, engine.InitialFEN)
	toMove := PlayMoves(t, b, setup.ToMove, "e2e4", "e7e5", "g1f3")

	AssertEqual(t, toMove, chess.Black)
	AssertEqual(t, engine.BoardToFEN(b, toMove, 1),
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2")
}
