// Package engine implements the rules of chess over a chess.Board: move
// generation, check detection, the legality filter, move application and
// FEN encoding.
package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Direction sets for the sliding and leaping generators.
var (
	orthogonals = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonals   = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allLines    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = allLines
)

// generatorsFor returns the ordered generator chain of a piece type.
func generatorsFor(kind chess.PieceType) []chess.Generator {
	switch kind {
	case chess.Pawn:
		return []chess.Generator{pawnMoves, enPassant}
	case chess.Knight:
		return []chess.Generator{leap(knightOffsets)}
	case chess.Bishop:
		return []chess.Generator{slide(diagonals)}
	case chess.Rook:
		return []chess.Generator{slide(orthogonals)}
	case chess.Queen:
		return []chess.Generator{slide(allLines)}
	case chess.King:
		return []chess.Generator{leap(kingOffsets), castling}
	}
	return nil
}

// NewPiece creates an unplaced piece with the generator chain of its type.
func NewPiece(colour chess.Colour, kind chess.PieceType) *chess.Piece {
	return chess.NewPiece(colour, kind, generatorsFor(kind)...)
}

// backRank is the piece order on the first and eighth ranks.
var backRank = [chess.BoardSize]chess.PieceType{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// NewInitialBoard returns a board set up in the standard starting position.
func NewInitialBoard() *chess.Board {
	b := chess.NewBoard()
	for file := 0; file < chess.BoardSize; file++ {
		for _, colour := range []chess.Colour{chess.White, chess.Black} {
			home := chess.HomeRank(colour)
			b.Place(chess.Sq(file, home), NewPiece(colour, backRank[file]))
			b.Place(chess.Sq(file, home+chess.PawnDirection(colour)), NewPiece(colour, chess.Pawn))
		}
	}
	return b
}

// slide returns a generator walking each direction until the edge, a
// friendly piece (excluded) or an enemy piece (included).
func slide(directions [][2]int) chess.Generator {
	return func(p *chess.Piece, b *chess.Board) []chess.Square {
		start := p.Cell()
		if start == nil {
			return nil
		}
		var out []chess.Square
		for _, d := range directions {
			for c, ok := start.Next(d[0], d[1]); ok; c, ok = c.Next(d[0], d[1]) {
				occupant := c.Piece()
				if occupant != nil && occupant.Colour() == p.Colour() {
					break
				}
				sq, _ := c.Square()
				out = append(out, sq)
				if occupant != nil {
					break
				}
			}
		}
		return out
	}
}

// leap returns a generator for fixed single-step offsets.
func leap(offsets [][2]int) chess.Generator {
	return func(p *chess.Piece, b *chess.Board) []chess.Square {
		start := p.Cell()
		if start == nil {
			return nil
		}
		var out []chess.Square
		for _, d := range offsets {
			c, ok := start.Next(d[0], d[1])
			if !ok {
				continue
			}
			if occupant := c.Piece(); occupant != nil && occupant.Colour() == p.Colour() {
				continue
			}
			sq, _ := c.Square()
			out = append(out, sq)
		}
		return out
	}
}
