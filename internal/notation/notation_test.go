package notation

import (
	"errors"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		instr   Instruction
		want    string
		wantErr error
	}{
		{
			name:  "pawn push",
			fen:   engine.InitialFEN,
			instr: Regular{Piece: chess.Pawn, Colour: chess.White, To: testutil.Sq("e4")},
			want:  "e2e4",
		},
		{
			name:  "knight",
			fen:   engine.InitialFEN,
			instr: Regular{Piece: chess.Knight, Colour: chess.White, To: testutil.Sq("f3")},
			want:  "g1f3",
		},
		{
			name:  "pawn capture by file",
			fen:   "4k3/8/8/3p4/2P1P3/8/8/4K3 w - - 0 1",
			instr: Regular{Piece: chess.Pawn, Colour: chess.White, To: testutil.Sq("d5"), Disambiguator: 'e'},
			want:  "e4d5",
		},
		{
			name:    "two knights need a file",
			fen:     "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1",
			instr:   Regular{Piece: chess.Knight, Colour: chess.White, To: testutil.Sq("d2")},
			wantErr: chesserrors.ErrAmbiguousNotation,
		},
		{
			name:  "two knights with file",
			fen:   "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1",
			instr: Regular{Piece: chess.Knight, Colour: chess.White, To: testutil.Sq("d2"), Disambiguator: 'f'},
			want:  "f1d2",
		},
		{
			name:  "rooks on one file need a rank",
			fen:   "4k3/R7/8/8/8/8/8/R3K3 w - - 0 1",
			instr: Regular{Piece: chess.Rook, Colour: chess.White, To: testutil.Sq("a4"), Disambiguator: '7'},
			want:  "a7a4",
		},
		{
			name:  "pinned piece is not a candidate",
			fen:   "4k3/8/8/8/1b6/8/3N4/4K1N1 w - - 0 1",
			instr: Regular{Piece: chess.Knight, Colour: chess.White, To: testutil.Sq("f3")},
			want:  "g1f3",
		},
		{
			name:    "no piece reaches",
			fen:     engine.InitialFEN,
			instr:   Regular{Piece: chess.Bishop, Colour: chess.White, To: testutil.Sq("c4")},
			wantErr: chesserrors.ErrUnresolvedNotation,
		},
		{
			name:    "disambiguator matches nothing",
			fen:     "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1",
			instr:   Regular{Piece: chess.Knight, Colour: chess.White, To: testutil.Sq("d2"), Disambiguator: 'c'},
			wantErr: chesserrors.ErrUnresolvedNotation,
		},
		{
			name:  "promotion carried through",
			fen:   "4k3/P7/8/8/8/8/8/4K3 w - - 0 1",
			instr: Regular{Piece: chess.Pawn, Colour: chess.White, To: testutil.Sq("a8"), Promotion: chess.Knight},
			want:  "a7a8n",
		},
		{
			name:  "white short castle",
			fen:   "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			instr: Castling{Colour: chess.White},
			want:  "e1g1",
		},
		{
			name:  "black long castle",
			fen:   "r3k3/8/8/8/8/8/8/4K3 b q - 0 1",
			instr: Castling{Colour: chess.Black, Long: true},
			want:  "e8c8",
		},
		{
			name:    "castle without king at home",
			fen:     "4k3/8/8/8/8/8/8/3K3R w - - 0 1",
			instr:   Castling{Colour: chess.White},
			wantErr: chesserrors.ErrUnresolvedNotation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := testutil.MustBoardFromFEN(t, tt.fen)
			got, err := Resolve(b, tt.instr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%s) error = %v, want %v", tt.instr, err, tt.wantErr)
				}
				var ne *chesserrors.NotationError
				if !errors.As(err, &ne) || ne.Instruction != tt.instr.String() {
					t.Errorf("error %v should be a NotationError for %s", err, tt.instr)
				}
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got.String(), tt.want)
		})
	}
}

func TestCastlingSquares(t *testing.T) {
	king, rook := CastlingSquares(chess.Black, false)
	testutil.AssertEqual(t, king.String(), "e8g8")
	testutil.AssertEqual(t, rook.String(), "h8f8")

	king, rook = CastlingSquares(chess.White, true)
	testutil.AssertEqual(t, king.String(), "e1c1")
	testutil.AssertEqual(t, rook.String(), "a1d1")
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		instr Instruction
		want  string
	}{
		{Regular{Piece: chess.Knight, To: testutil.Sq("d2"), Disambiguator: 'b'}, "Nbd2"},
		{Regular{Piece: chess.Pawn, To: testutil.Sq("e8"), Promotion: chess.Queen}, "e8=Q"},
		{Castling{Long: true}, "O-O-O"},
		{Castling{}, "O-O"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.instr.String(), tt.want)
	}
}

func TestResolveAll(t *testing.T) {
	b, setup := testutil.MustBoardFromFEN(t, engine.InitialFEN)
	instrs := []Instruction{
		Regular{Piece: chess.Pawn, Colour: chess.White, To: testutil.Sq("e4")},
		Regular{Piece: chess.Pawn, Colour: chess.Black, To: testutil.Sq("e5")},
		Regular{Piece: chess.Knight, Colour: chess.White, To: testutil.Sq("f3")},
		Regular{Piece: chess.Knight, Colour: chess.Black, To: testutil.Sq("c6")},
		Regular{Piece: chess.Bishop, Colour: chess.White, To: testutil.Sq("c4")},
		Regular{Piece: chess.Knight, Colour: chess.Black, To: testutil.Sq("f6")},
		Castling{Colour: chess.White},
	}

	moves, err := ResolveAll(b, setup.ToMove, instrs)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(moves), len(instrs))
	testutil.AssertEqual(t, engine.SimplifiedFEN(b, chess.Black),
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 b Qkq -")
}

func TestResolveAll_StopsAtFailure(t *testing.T) {
	b, setup := testutil.MustBoardFromFEN(t, engine.InitialFEN)
	instrs := []Instruction{
		Regular{Piece: chess.Pawn, Colour: chess.White, To: testutil.Sq("d4")},
		Regular{Piece: chess.Queen, Colour: chess.Black, To: testutil.Sq("d4")},
	}

	moves, err := ResolveAll(b, setup.ToMove, instrs)
	testutil.AssertEqual(t, len(moves), 1)
	testutil.AssertErrorIs(t, err, chesserrors.ErrUnresolvedNotation)

	var me *chesserrors.MoveError
	if !errors.As(err, &me) || me.Ply != 2 {
		t.Errorf("error %v should report ply 2", err)
	}
}

func TestResolveAll_WrongTurn(t *testing.T) {
	b, setup := testutil.MustBoardFromFEN(t, engine.InitialFEN)
	_, err := ResolveAll(b, setup.ToMove, []Instruction{
		Regular{Piece: chess.Pawn, Colour: chess.Black, To: testutil.Sq("e5")},
	})
	testutil.AssertErrorIs(t, err, chesserrors.ErrWrongTurn)
}
