package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnMoves generates forward pushes and diagonal captures.
func pawnMoves(p *chess.Piece, b *chess.Board) []chess.Square {
	from, ok := p.Square()
	if !ok {
		return nil
	}
	dir := chess.PawnDirection(p.Colour())
	var out []chess.Square

	one := from.Offset(0, dir)
	if one.Valid() && b.PieceAt(one) == nil {
		out = append(out, one)
		two := from.Offset(0, 2*dir)
		if !p.HasMoved() && two.Valid() && b.PieceAt(two) == nil {
			out = append(out, two)
		}
	}

	for _, df := range []int{-1, 1} {
		target := from.Offset(df, dir)
		if occupant := b.PieceAt(target); occupant != nil && occupant.Colour() != p.Colour() {
			out = append(out, target)
		}
	}
	return out
}

// enPassant generates the capture onto the square skipped by an enemy
// pawn's double push, available on the very next ply only.
func enPassant(p *chess.Piece, b *chess.Board) []chess.Square {
	if !b.DoublePush() {
		return nil
	}
	last, ok := b.LastMove()
	if !ok {
		return nil
	}
	from, ok := p.Square()
	if !ok {
		return nil
	}
	victim := b.PieceAt(last.To)
	if victim == nil || victim.Type() != chess.Pawn || victim.Colour() == p.Colour() {
		return nil
	}
	if last.To.Rank != from.Rank || abs(last.To.File-from.File) != 1 {
		return nil
	}
	mid := last.Middle()
	if b.PieceAt(mid) != nil {
		return nil
	}
	return []chess.Square{mid}
}

// EnPassantVictim returns the square of the pawn captured en passant by m,
// if m is an en-passant capture on the current board.
func EnPassantVictim(b *chess.Board, m chess.Move) (chess.Square, bool) {
	p := b.PieceAt(m.From)
	if p == nil || p.Type() != chess.Pawn {
		return chess.NoSquare, false
	}
	if m.From.File == m.To.File || b.PieceAt(m.To) != nil {
		return chess.NoSquare, false
	}
	victim := chess.Sq(m.To.File, m.From.Rank)
	if v := b.PieceAt(victim); v == nil || v.Type() != chess.Pawn || v.Colour() == p.Colour() {
		return chess.NoSquare, false
	}
	return victim, true
}

// IsPromotion returns true if m takes a pawn to its last rank.
func IsPromotion(b *chess.Board, m chess.Move) bool {
	p := b.PieceAt(m.From)
	return p != nil && p.Type() == chess.Pawn && m.To.Rank == chess.PromotionRank(p.Colour())
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
