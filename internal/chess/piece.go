package chess

import "fmt"

// Generator produces the geometrically reachable destination squares of a
// piece on a board. Generators never check king safety.
type Generator func(p *Piece, b *Board) []Square

// Piece is a chess man. Colour and type never change; the moved flag and
// the cell it stands on do. Generators are evaluated in order and their
// results concatenated.
type Piece struct {
	colour     Colour
	kind       PieceType
	moved      bool
	cell       *Cell
	generators []Generator
}

// NewPiece creates a piece that is not yet placed on a board.
func NewPiece(colour Colour, kind PieceType, generators ...Generator) *Piece {
	return &Piece{
		colour:     colour,
		kind:       kind,
		generators: generators,
	}
}

// Colour returns the colour of the piece.
func (p *Piece) Colour() Colour { return p.colour }

// Type returns the piece type.
func (p *Piece) Type() PieceType { return p.kind }

// HasMoved returns true once the piece has made a move.
func (p *Piece) HasMoved() bool { return p.moved }

// SetMoved sets the moved flag.
func (p *Piece) SetMoved(moved bool) { p.moved = moved }

// Cell returns the cell the piece stands on, or nil if it is off the board.
func (p *Piece) Cell() *Cell { return p.cell }

// Square returns the square of the piece.
func (p *Piece) Square() (Square, bool) {
	if p.cell == nil {
		return NoSquare, false
	}
	return p.cell.Square()
}

// Candidates runs every generator against the board the piece stands on.
func (p *Piece) Candidates() []Square {
	if p.cell == nil || p.cell.board == nil {
		return nil
	}
	var out []Square
	for _, gen := range p.generators {
		out = append(out, gen(p, p.cell.board)...)
	}
	return out
}

// Same returns true if both pieces have the same colour and type.
func (p *Piece) Same(o *Piece) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.colour == o.colour && p.kind == o.kind
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
func (p *Piece) Letter() byte {
	letter := p.kind.Letter()
	if p.colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String implements fmt.Stringer.
func (p *Piece) String() string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s %s", p.colour, p.kind)
}
