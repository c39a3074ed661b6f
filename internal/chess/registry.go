package chess

// Cell is a board slot holding at most one piece. The board pointer is a
// back-reference used for direction lookups only.
type Cell struct {
	piece *Piece
	board *Board
}

// Piece returns the occupant, or nil.
func (c *Cell) Piece() *Piece { return c.piece }

// IsEmpty returns true if no piece stands on the cell.
func (c *Cell) IsEmpty() bool { return c.piece == nil }

// Board returns the board that owns the cell.
func (c *Cell) Board() *Board { return c.board }

// SetPiece puts p on the cell, replacing any occupant. A nil p empties the cell.
func (c *Cell) SetPiece(p *Piece) {
	c.piece = p
	if p != nil {
		p.cell = c
	}
}

// Clear empties the cell and returns the former occupant.
func (c *Cell) Clear() *Piece {
	p := c.piece
	c.piece = nil
	if p != nil && p.cell == c {
		p.cell = nil
	}
	return p
}

// Square returns the coordinate of the cell on its board.
func (c *Cell) Square() (Square, bool) {
	if c.board == nil {
		return NoSquare, false
	}
	return c.board.cells.Reverse(c)
}

// Next returns the neighbouring cell displaced by df files and dr ranks.
func (c *Cell) Next(df, dr int) (*Cell, bool) {
	sq, ok := c.Square()
	if !ok {
		return nil, false
	}
	return c.board.cells.Get(sq.Offset(df, dr))
}

// Registry is the bijection between squares and cells. Cells are stored in a
// fixed arena indexed by Square.Index, with a reverse index from cell
// identity back to its square.
type Registry struct {
	slots [NumSquares]*Cell
	index map[*Cell]Square
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[*Cell]Square, NumSquares)}
}

// Put pairs sq with c. Any previous partner of either side is unlinked
// first, so the mapping stays one-to-one. Returns false for an off-board
// square or a nil cell.
func (r *Registry) Put(sq Square, c *Cell) bool {
	idx := sq.Index()
	if idx < 0 || c == nil {
		return false
	}
	if old, ok := r.index[c]; ok {
		if old == sq {
			return true
		}
		r.slots[old.Index()] = nil
	}
	if prev := r.slots[idx]; prev != nil {
		delete(r.index, prev)
	}
	r.slots[idx] = c
	r.index[c] = sq
	return true
}

// Get returns the cell at sq.
func (r *Registry) Get(sq Square) (*Cell, bool) {
	idx := sq.Index()
	if idx < 0 || r.slots[idx] == nil {
		return nil, false
	}
	return r.slots[idx], true
}

// Reverse returns the square of c.
func (r *Registry) Reverse(c *Cell) (Square, bool) {
	sq, ok := r.index[c]
	if !ok {
		return NoSquare, false
	}
	return sq, true
}

// Contains returns true if sq has a cell.
func (r *Registry) Contains(sq Square) bool {
	_, ok := r.Get(sq)
	return ok
}

// ContainsCell returns true if c is registered.
func (r *Registry) ContainsCell(c *Cell) bool {
	_, ok := r.index[c]
	return ok
}

// Len returns the number of pairings.
func (r *Registry) Len() int {
	return len(r.index)
}

// Squares returns every registered square in file-major order.
func (r *Registry) Squares() []Square {
	out := make([]Square, 0, len(r.index))
	for i, c := range r.slots {
		if c != nil {
			out = append(out, SquareAt(i))
		}
	}
	return out
}

// Cells returns every registered cell in file-major square order.
func (r *Registry) Cells() []*Cell {
	out := make([]*Cell, 0, len(r.index))
	for _, c := range r.slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
