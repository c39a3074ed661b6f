package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsCheck returns true if any opposing piece's raw candidate set contains
// the square of the colour's king. A board without that king is never in check.
func IsCheck(b *chess.Board, colour chess.Colour) bool {
	_, kingSq, ok := b.King(colour)
	if !ok {
		return false
	}
	return isSquareAttacked(b, kingSq, colour.Opposite())
}

// isSquareAttacked returns true if a piece of byColour can reach sq.
func isSquareAttacked(b *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for _, p := range b.Pieces(byColour) {
		for _, target := range p.Candidates() {
			if target == sq {
				return true
			}
		}
	}
	return false
}

// Checkers returns the squares of the pieces giving check to colour.
func Checkers(b *chess.Board, colour chess.Colour) []chess.Square {
	_, kingSq, ok := b.King(colour)
	if !ok {
		return nil
	}
	var out []chess.Square
	for _, p := range b.Pieces(colour.Opposite()) {
		for _, target := range p.Candidates() {
			if target == kingSq {
				sq, _ := p.Square()
				out = append(out, sq)
				break
			}
		}
	}
	return out
}
