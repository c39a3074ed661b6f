package chess

// Board represents a chess board with all state needed for the rules engine.
type Board struct {
	// The 64 cells and their coordinates.
	cells *Registry

	// The most recently applied move, if any.
	lastMove    Move
	hasLastMove bool

	// Was the last move a pawn double push?
	doublePush bool

	// The current full-move number.
	moveNumber int
}

// NewBoard creates a new empty board with 64 cells.
func NewBoard() *Board {
	b := &Board{
		cells:      NewRegistry(),
		moveNumber: 1,
	}
	for i := 0; i < NumSquares; i++ {
		b.cells.Put(SquareAt(i), &Cell{board: b})
	}
	return b
}

// Cells returns the square/cell registry.
func (b *Board) Cells() *Registry {
	return b.cells
}

// Cell returns the cell at sq.
func (b *Board) Cell(sq Square) (*Cell, bool) {
	return b.cells.Get(sq)
}

// PieceAt returns the piece on sq, or nil for an empty or off-board square.
func (b *Board) PieceAt(sq Square) *Piece {
	c, ok := b.cells.Get(sq)
	if !ok {
		return nil
	}
	return c.piece
}

// Place puts p on sq, replacing any occupant.
func (b *Board) Place(sq Square, p *Piece) {
	if c, ok := b.cells.Get(sq); ok {
		c.SetPiece(p)
	}
}

// Remove empties sq and returns the former occupant.
func (b *Board) Remove(sq Square) *Piece {
	if c, ok := b.cells.Get(sq); ok {
		return c.Clear()
	}
	return nil
}

// Clear removes every piece and resets move state.
func (b *Board) Clear() {
	for _, c := range b.cells.Cells() {
		c.Clear()
	}
	b.hasLastMove = false
	b.lastMove = Move{}
	b.doublePush = false
	b.moveNumber = 1
}

// LastMove returns the most recently applied move.
func (b *Board) LastMove() (Move, bool) {
	return b.lastMove, b.hasLastMove
}

// SetLastMove records m as the most recently applied move.
func (b *Board) SetLastMove(m Move) {
	b.lastMove = m
	b.hasLastMove = true
}

// DoublePush returns true if the last move was a pawn double push.
func (b *Board) DoublePush() bool {
	return b.doublePush
}

// SetDoublePush sets the double push flag.
func (b *Board) SetDoublePush(v bool) {
	b.doublePush = v
}

// MoveNumber returns the full-move number.
func (b *Board) MoveNumber() int {
	return b.moveNumber
}

// SetMoveNumber sets the full-move number.
func (b *Board) SetMoveNumber(n int) {
	b.moveNumber = n
}

// Pieces returns the pieces of the given colour in file-major square order.
func (b *Board) Pieces(colour Colour) []*Piece {
	var out []*Piece
	for _, c := range b.cells.Cells() {
		if c.piece != nil && c.piece.colour == colour {
			out = append(out, c.piece)
		}
	}
	return out
}

// King returns the king of the given colour and its square.
func (b *Board) King(colour Colour) (*Piece, Square, bool) {
	for _, sq := range b.cells.Squares() {
		p := b.PieceAt(sq)
		if p != nil && p.kind == King && p.colour == colour {
			return p, sq, true
		}
	}
	return nil, NoSquare, false
}

// PieceState is a value description of one square, used to compare boards.
type PieceState struct {
	Colour Colour
	Type   PieceType
	Moved  bool
}

// Occupancy returns a value copy of every square in Square.Index order.
// Empty squares have Type NoPieceType.
func (b *Board) Occupancy() [NumSquares]PieceState {
	var out [NumSquares]PieceState
	for i := 0; i < NumSquares; i++ {
		if p := b.PieceAt(SquareAt(i)); p != nil {
			out[i] = PieceState{Colour: p.colour, Type: p.kind, Moved: p.moved}
		}
	}
	return out
}

// BoardState captures all mutable board state for save/restore operations.
// Piece identities are kept, so a restore puts the very same pieces back.
type BoardState struct {
	pieces      [NumSquares]*Piece
	moved       [NumSquares]bool
	lastMove    Move
	hasLastMove bool
	doublePush  bool
	moveNumber  int
}

// SaveState captures the current board state for later restoration.
func (b *Board) SaveState() BoardState {
	s := BoardState{
		lastMove:    b.lastMove,
		hasLastMove: b.hasLastMove,
		doublePush:  b.doublePush,
		moveNumber:  b.moveNumber,
	}
	for i := 0; i < NumSquares; i++ {
		if p := b.PieceAt(SquareAt(i)); p != nil {
			s.pieces[i] = p
			s.moved[i] = p.moved
		}
	}
	return s
}

// RestoreState restores the board to a previously saved state.
func (b *Board) RestoreState(s BoardState) {
	for i := 0; i < NumSquares; i++ {
		c, _ := b.cells.Get(SquareAt(i))
		c.Clear()
	}
	for i, p := range s.pieces {
		if p == nil {
			continue
		}
		c, _ := b.cells.Get(SquareAt(i))
		c.SetPiece(p)
		p.moved = s.moved[i]
	}
	b.lastMove = s.lastMove
	b.hasLastMove = s.hasLastMove
	b.doublePush = s.doublePush
	b.moveNumber = s.moveNumber
}
