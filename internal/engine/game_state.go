package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Status summarises the position for the side to move.
type Status int

const (
	Ongoing Status = iota
	InCheck
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case InCheck:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// PositionStatus classifies the position for colour, the side to move.
func PositionStatus(b *chess.Board, colour chess.Colour) Status {
	check := IsCheck(b, colour)
	if CannotMoveWithoutMate(b, colour) {
		if check {
			return Checkmate
		}
		return Stalemate
	}
	if check {
		return InCheck
	}
	return Ongoing
}
