package engine

import (
	"errors"
	"sort"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

var legalityFENs = []string{
	InitialFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/KPp4r/8/8/8/7k w - c6 0 2",
	"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
}

// snapshot records piece identity per square so a revert can be checked
// beyond value equality.
func snapshot(b *chess.Board) [chess.NumSquares]*chess.Piece {
	var out [chess.NumSquares]*chess.Piece
	for i := range out {
		out[i] = b.PieceAt(chess.SquareAt(i))
	}
	return out
}

func TestValidCells_LeavesBoardUnchanged(t *testing.T) {
	for _, fen := range legalityFENs {
		t.Run(fen, func(t *testing.T) {
			b, setup := mustFEN(t, fen)
			beforeOcc := b.Occupancy()
			beforeIDs := snapshot(b)
			beforeFEN := BoardToFEN(b, setup.ToMove, setup.HalfmoveClock)

			for _, colour := range []chess.Colour{chess.White, chess.Black} {
				for _, p := range b.Pieces(colour) {
					from, _ := p.Square()
					ValidCells(b, p)
					if after, _ := p.Square(); after != from {
						t.Fatalf("%v moved from %s to %s during filtering", p, from, after)
					}
				}
			}

			if b.Occupancy() != beforeOcc {
				t.Error("occupancy changed during speculation")
			}
			if snapshot(b) != beforeIDs {
				t.Error("piece identities changed during speculation")
			}
			if got := BoardToFEN(b, setup.ToMove, setup.HalfmoveClock); got != beforeFEN {
				t.Errorf("FEN changed: %q -> %q", beforeFEN, got)
			}
		})
	}
}

func TestValidCells_NeverLeavesKingInCheck(t *testing.T) {
	for _, fen := range legalityFENs {
		t.Run(fen, func(t *testing.T) {
			b, setup := mustFEN(t, fen)
			for _, m := range LegalMoves(b, setup.ToMove) {
				state := b.SaveState()
				if err := MakeMove(b, m); err != nil {
					t.Fatalf("MakeMove(%s) error: %v", m, err)
				}
				if IsCheck(b, setup.ToMove) {
					t.Errorf("%s leaves %s in check", m, setup.ToMove)
				}
				b.RestoreState(state)
			}
		})
	}
}

func TestIsCheck(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		colour chess.Colour
		want   bool
	}{
		{"start", InitialFEN, chess.White, false},
		{"rook on file", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", chess.White, true},
		{"blocked rook", "4k3/8/8/8/4r3/8/4P3/4K3 w - - 0 1", chess.White, false},
		{"pawn diagonal", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", chess.White, true},
		{"pawn straight ahead is no check", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", chess.White, false},
		{"knight", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", chess.White, true},
		{"black in check", "4k3/8/8/8/8/8/8/4KQ2 b - - 0 1", chess.Black, false},
		{"black queen check", "4k3/8/8/8/Q7/8/8/4K3 b - - 0 1", chess.Black, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := mustFEN(t, tt.fen)
			if got := IsCheck(b, tt.colour); got != tt.want {
				t.Errorf("IsCheck(%s) = %v, want %v", tt.colour, got, tt.want)
			}
		})
	}
}

func TestPositionStatus(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"start", InitialFEN, Ongoing},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", Checkmate},
		{"back rank mate", "6k1/5ppp/8/8/8/8/8/R5K1 b - - 0 1", Ongoing},
		{"rook mate", "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", Checkmate},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"check with escape", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", InCheck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, setup := mustFEN(t, tt.fen)
			if got := PositionStatus(b, setup.ToMove); got != tt.want {
				t.Errorf("PositionStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnPassantWindow(t *testing.T) {
	b, _ := mustFEN(t, "4k3/3p4/8/4P3/8/8/8/4K3 b - - 0 1")

	if err := MakeMove(b, chess.NewMove(sq("d7"), sq("d5"))); err != nil {
		t.Fatal(err)
	}
	if !containsSquare(ValidCells(b, b.PieceAt(sq("e5"))), sq("d6")) {
		t.Fatal("d6 should be legal for e5 right after d7d5")
	}

	// One ply later the right has lapsed.
	if err := MakeMove(b, chess.NewMove(sq("e1"), sq("f1"))); err != nil {
		t.Fatal(err)
	}
	if err := MakeMove(b, chess.NewMove(sq("e8"), sq("f8"))); err != nil {
		t.Fatal(err)
	}
	if containsSquare(ValidCells(b, b.PieceAt(sq("e5"))), sq("d6")) {
		t.Error("d6 must not be legal two plies after the double push")
	}
}

func TestEnPassantCapture(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	if err := MakeMove(b, chess.NewMove(sq("e5"), sq("d6"))); err != nil {
		t.Fatal(err)
	}
	if b.PieceAt(sq("d5")) != nil {
		t.Error("en-passant victim still on d5")
	}
	if p := b.PieceAt(sq("d6")); p == nil || p.Type() != chess.Pawn {
		t.Error("capturing pawn not on d6")
	}
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	b, _ := mustFEN(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 2")
	if containsSquare(ValidCells(b, b.PieceAt(sq("b5"))), sq("c6")) {
		t.Error("bxc6 e.p. exposes the king along the fifth rank and must be illegal")
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		king  string
		want  string
		legal bool
	}{
		{"kingside open", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1", "g1", true},
		{"queenside open", "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", "e1", "c1", true},
		{"black kingside", "4k2r/8/8/8/8/8/8/4K3 b k - 0 1", "e8", "g8", true},
		{"rook has moved", "4k3/8/8/8/8/8/8/4K2R w - - 0 1", "e1", "g1", false},
		{"path blocked", "4k3/8/8/8/8/8/8/4KB1R w K - 0 1", "e1", "g1", false},
		{"king in check", "4k3/8/8/8/8/8/4r3/4K2R w K - 0 1", "e1", "g1", false},
		{"transit square attacked", "4k3/8/8/8/8/8/5r2/4K2R w K - 0 1", "e1", "g1", false},
		{"destination attacked", "4k3/8/8/8/8/8/6r1/4K2R w K - 0 1", "e1", "g1", false},
		{"b1 attacked does not matter", "4k3/8/8/8/8/8/1r6/R3K3 w Q - 0 1", "e1", "c1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := mustFEN(t, tt.fen)
			got := containsSquare(ValidCells(b, b.PieceAt(sq(tt.king))), sq(tt.want))
			if got != tt.legal {
				t.Errorf("castling %s%s legal = %v, want %v", tt.king, tt.want, got, tt.legal)
			}
		})
	}
}

func TestMakeMove_KingsideCastle(t *testing.T) {
	b, _ := mustFEN(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	if err := MakeMove(b, chess.NewMove(sq("e1"), sq("g1"))); err != nil {
		t.Fatal(err)
	}
	king, rook := b.PieceAt(sq("g1")), b.PieceAt(sq("f1"))
	if king == nil || king.Type() != chess.King || !king.HasMoved() {
		t.Error("king not on g1 or not marked moved")
	}
	if rook == nil || rook.Type() != chess.Rook || !rook.HasMoved() {
		t.Error("rook not on f1 or not marked moved")
	}
	if b.PieceAt(sq("h1")) != nil || b.PieceAt(sq("e1")) != nil {
		t.Error("origin squares not emptied")
	}
	if last, _ := b.LastMove(); last != chess.NewMove(sq("e1"), sq("g1")) {
		t.Errorf("LastMove = %s, want the king leg e1g1", last)
	}
	if got := SimplifiedFEN(b, chess.Black); got != "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1 b Qkq -" {
		t.Errorf("after O-O: %q", got)
	}

	if err := MakeMove(b, chess.NewMove(sq("e8"), sq("c8"))); err != nil {
		t.Fatal(err)
	}
	if b.PieceAt(sq("d8")).Type() != chess.Rook || b.PieceAt(sq("c8")).Type() != chess.King {
		t.Error("black queenside castle misplaced king or rook")
	}
	if b.MoveNumber() != 2 {
		t.Errorf("MoveNumber = %d, want 2 (the rook leg does not count)", b.MoveNumber())
	}
}

func TestApplyMove(t *testing.T) {
	t.Run("illegal destination leaves board untouched", func(t *testing.T) {
		b := NewInitialBoard()
		before := b.Occupancy()
		err := ApplyMove(b, chess.NewMove(sq("e2"), sq("e5")), false)
		if !errors.Is(err, chesserrors.ErrIllegalMove) {
			t.Errorf("ApplyMove(e2e5) error = %v, want ErrIllegalMove", err)
		}
		if b.Occupancy() != before {
			t.Error("board mutated by a rejected move")
		}
	})

	t.Run("empty origin", func(t *testing.T) {
		b := NewInitialBoard()
		err := ApplyMove(b, chess.NewMove(sq("e4"), sq("e5")), false)
		if !errors.Is(err, chesserrors.ErrNoPiece) {
			t.Errorf("error = %v, want ErrNoPiece", err)
		}
	})

	t.Run("double push sets flag and counters", func(t *testing.T) {
		b := NewInitialBoard()
		if err := ApplyMove(b, chess.NewMove(sq("e2"), sq("e4")), false); err != nil {
			t.Fatal(err)
		}
		if !b.DoublePush() || !b.PieceAt(sq("e4")).HasMoved() || b.MoveNumber() != 1 {
			t.Error("white double push: wrong flag, moved bit or move number")
		}
		if err := ApplyMove(b, chess.NewMove(sq("g8"), sq("f6")), false); err != nil {
			t.Fatal(err)
		}
		if b.DoublePush() || b.MoveNumber() != 2 {
			t.Error("black knight move: double push not cleared or move number not advanced")
		}
	})

	t.Run("castling sub-move skips the filter and counters", func(t *testing.T) {
		b, _ := mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1")
		if err := ApplyMove(b, chess.NewMove(sq("h1"), sq("f1")), true); err != nil {
			t.Fatal(err)
		}
		if _, ok := b.LastMove(); ok {
			t.Error("castling sub-move recorded as last move")
		}
		if !b.PieceAt(sq("f1")).HasMoved() {
			t.Error("rook not marked moved")
		}
	})
}

func TestMakeMove_Promotion(t *testing.T) {
	tests := []struct {
		move string
		want chess.PieceType
	}{
		{"a7a8", chess.Queen},
		{"a7a8n", chess.Knight},
		{"a7b8r", chess.Rook},
	}
	for _, tt := range tests {
		t.Run(tt.move, func(t *testing.T) {
			b, _ := mustFEN(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
			m := chess.NewMove(sq(tt.move[0:2]), sq(tt.move[2:4]))
			if len(tt.move) == 5 {
				m.Promotion = chess.PieceTypeFromLetter(tt.move[4])
			}
			if err := MakeMove(b, m); err != nil {
				t.Fatal(err)
			}
			p := b.PieceAt(m.To)
			if p == nil || p.Type() != tt.want || p.Colour() != chess.White {
				t.Errorf("piece on %s = %v, want White %s", m.To, p, tt.want)
			}
		})
	}

	b, _ := mustFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	before := b.Occupancy()
	m := chess.Move{From: sq("a7"), To: sq("a8"), Promotion: chess.King}
	if err := MakeMove(b, m); !errors.Is(err, chesserrors.ErrIllegalMove) {
		t.Errorf("promotion to king error = %v, want ErrIllegalMove", err)
	}
	if b.Occupancy() != before {
		t.Error("board mutated by a rejected promotion")
	}
}

func TestCheckers(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/8/1b6/8/4r3/4K3 w - - 0 1")
	got := squareNames(Checkers(b, chess.White))
	want := []string{"b4", "e2"}
	sort.Strings(want)
	if !equalNames(got, want) {
		t.Errorf("Checkers() = %v, want %v", got, want)
	}
}

func containsSquare(list []chess.Square, s chess.Square) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
