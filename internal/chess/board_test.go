package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.MoveNumber() != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber())
		}
		if b.DoublePush() {
			t.Error("DoublePush = true; want false")
		}
		if _, ok := b.LastMove(); ok {
			t.Error("LastMove present on a fresh board")
		}
	})

	t.Run("64 empty cells", func(t *testing.T) {
		if got := b.Cells().Len(); got != NumSquares {
			t.Fatalf("registry size = %d; want %d", got, NumSquares)
		}
		for _, sq := range b.Cells().Squares() {
			if p := b.PieceAt(sq); p != nil {
				t.Errorf("PieceAt(%s) = %v; want nil", sq, p)
			}
		}
	})

	t.Run("cells know their board", func(t *testing.T) {
		for _, c := range b.Cells().Cells() {
			if c.Board() != b {
				t.Fatal("cell back-reference does not point at owning board")
			}
		}
	})
}

func TestBoardPlaceAndRemove(t *testing.T) {
	b := NewBoard()
	e4 := MustParseSquare("e4")
	knight := NewPiece(White, Knight)

	b.Place(e4, knight)
	if got := b.PieceAt(e4); got != knight {
		t.Fatalf("PieceAt(e4) = %v; want the placed knight", got)
	}
	if sq, ok := knight.Square(); !ok || sq != e4 {
		t.Errorf("knight.Square() = %v, %v; want e4, true", sq, ok)
	}

	removed := b.Remove(e4)
	if removed != knight {
		t.Errorf("Remove(e4) = %v; want the knight", removed)
	}
	if knight.Cell() != nil {
		t.Error("removed piece still references a cell")
	}
	if b.PieceAt(e4) != nil {
		t.Error("e4 still occupied after Remove")
	}
	if b.Remove(Sq(9, 9)) != nil {
		t.Error("Remove off board returned a piece")
	}
}

func TestBoardKing(t *testing.T) {
	b := NewBoard()
	if _, _, ok := b.King(White); ok {
		t.Fatal("found a king on an empty board")
	}
	king := NewPiece(Black, King)
	b.Place(MustParseSquare("e8"), king)

	p, sq, ok := b.King(Black)
	if !ok || p != king || sq != MustParseSquare("e8") {
		t.Errorf("King(Black) = %v, %v, %v; want king, e8, true", p, sq, ok)
	}
}

func TestBoardSaveRestoreState(t *testing.T) {
	b := NewBoard()
	rook := NewPiece(White, Rook)
	pawn := NewPiece(Black, Pawn)
	b.Place(MustParseSquare("a1"), rook)
	b.Place(MustParseSquare("a7"), pawn)
	b.SetMoveNumber(12)

	before := b.Occupancy()
	state := b.SaveState()

	b.Remove(MustParseSquare("a7"))
	b.Remove(MustParseSquare("a1"))
	b.Place(MustParseSquare("a7"), rook)
	rook.SetMoved(true)
	b.SetLastMove(NewMove(MustParseSquare("a1"), MustParseSquare("a7")))
	b.SetMoveNumber(13)

	b.RestoreState(state)

	if after := b.Occupancy(); after != before {
		t.Errorf("occupancy after restore differs from before")
	}
	if b.PieceAt(MustParseSquare("a1")) != rook || b.PieceAt(MustParseSquare("a7")) != pawn {
		t.Error("restore did not put back the original piece identities")
	}
	if rook.HasMoved() {
		t.Error("restore did not reset the moved flag")
	}
	if _, ok := b.LastMove(); ok {
		t.Error("restore kept the last move")
	}
	if b.MoveNumber() != 12 {
		t.Errorf("MoveNumber = %d; want 12", b.MoveNumber())
	}
}

func TestBoardPiecesOrder(t *testing.T) {
	b := NewBoard()
	b.Place(MustParseSquare("h1"), NewPiece(White, Rook))
	b.Place(MustParseSquare("a8"), NewPiece(White, Rook))
	b.Place(MustParseSquare("a2"), NewPiece(White, Pawn))
	b.Place(MustParseSquare("d4"), NewPiece(Black, Queen))

	var got []string
	for _, p := range b.Pieces(White) {
		sq, _ := p.Square()
		got = append(got, sq.String())
	}
	want := []string{"a2", "a8", "h1"}
	if len(got) != len(want) {
		t.Fatalf("Pieces(White) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Pieces(White)[%d] = %s; want %s", i, got[i], want[i])
		}
	}
}
