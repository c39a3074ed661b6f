package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// castling generates the king's two-file step towards each never-moved
// friendly rook that can be reached across empty squares. Attacked transit
// squares are rejected later by the legality filter.
func castling(p *chess.Piece, b *chess.Board) []chess.Square {
	if p.HasMoved() {
		return nil
	}
	from, ok := p.Square()
	if !ok {
		return nil
	}
	var out []chess.Square
	for _, df := range []int{-1, 1} {
		if _, ok := castlingRook(b, p, from, df); ok {
			out = append(out, from.Offset(2*df, 0))
		}
	}
	return out
}

// castlingRook scans from the king along its rank in direction df and
// returns the square of an eligible rook: same colour, never moved, beyond
// the king's destination, with only empty squares in between.
func castlingRook(b *chess.Board, king *chess.Piece, from chess.Square, df int) (chess.Square, bool) {
	for sq := from.Offset(df, 0); sq.Valid(); sq = sq.Offset(df, 0) {
		occupant := b.PieceAt(sq)
		if occupant == nil {
			continue
		}
		if occupant.Type() == chess.Rook && occupant.Colour() == king.Colour() &&
			!occupant.HasMoved() && abs(sq.File-from.File) > 2 {
			return sq, true
		}
		return chess.NoSquare, false
	}
	return chess.NoSquare, false
}

// IsCastling returns true if m is a king move of more than one file.
func IsCastling(b *chess.Board, m chess.Move) bool {
	p := b.PieceAt(m.From)
	return p != nil && p.Type() == chess.King && m.FileDistance() > 1
}

// CastlingRookMove returns the rook leg belonging to the king move m. It
// must be called before the king leg is applied.
func CastlingRookMove(b *chess.Board, m chess.Move) (chess.Move, bool) {
	if !IsCastling(b, m) {
		return chess.Move{}, false
	}
	king := b.PieceAt(m.From)
	df := sign(m.To.File - m.From.File)
	rook, ok := castlingRook(b, king, m.From, df)
	if !ok {
		return chess.Move{}, false
	}
	return chess.NewMove(rook, m.From.Offset(df, 0)), true
}

// castlingPathSafe applies the standard rule: the king may not castle out
// of check or across an attacked square. The destination itself is checked
// by the normal legality test.
func castlingPathSafe(b *chess.Board, king *chess.Piece, from, to chess.Square) bool {
	if IsCheck(b, king.Colour()) {
		return false
	}
	transit := from.Offset(sign(to.File-from.File), 0)
	return leavesKingSafe(b, king, from, transit)
}
