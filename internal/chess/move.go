package chess

import "strings"

// Move is an ordered (from, to) pair. Promotion optionally names the piece a
// pawn reaching the last rank becomes; NoPieceType leaves the choice to the
// promotion rendezvous.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NewMove creates a move without a promotion choice.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// Middle returns the arithmetic midpoint of the move. For a pawn double push
// this is the square that was skipped.
func (m Move) Middle() Square {
	return Square{File: (m.From.File + m.To.File) / 2, Rank: (m.From.Rank + m.To.Rank) / 2}
}

// FileDistance returns the absolute number of files crossed.
func (m Move) FileDistance() int {
	return abs(m.To.File - m.From.File)
}

// RankDistance returns the absolute number of ranks crossed.
func (m Move) RankDistance() int {
	return abs(m.To.Rank - m.From.Rank)
}

// String returns the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if m.Promotion != NoPieceType {
		sb.WriteByte(m.Promotion.Letter() + ('a' - 'A'))
	}
	return sb.String()
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
