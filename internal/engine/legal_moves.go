package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// ValidCells filters the raw candidates of p down to the destinations that
// do not leave its own king in check. Each candidate is tried on the board
// itself and reverted, so the board is unchanged when ValidCells returns.
func ValidCells(b *chess.Board, p *chess.Piece) []chess.Square {
	from, ok := p.Square()
	if !ok {
		return nil
	}
	var out []chess.Square
	for _, to := range p.Candidates() {
		if !leavesKingSafe(b, p, from, to) {
			continue
		}
		if p.Type() == chess.King && abs(to.File-from.File) == 2 && !castlingPathSafe(b, p, from, to) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// leavesKingSafe speculatively moves p from one square to another, tests
// for check and reverts. Any captured piece, including an en-passant
// victim, is lifted for the test and put back afterwards.
func leavesKingSafe(b *chess.Board, p *chess.Piece, from, to chess.Square) bool {
	fromCell, ok := b.Cell(from)
	if !ok {
		return false
	}
	toCell, ok := b.Cell(to)
	if !ok {
		return false
	}

	var victimCell *chess.Cell
	var victim *chess.Piece
	if sq, ok := EnPassantVictim(b, chess.NewMove(from, to)); ok {
		victimCell, _ = b.Cell(sq)
		victim = victimCell.Clear()
	}
	captured := toCell.Clear()
	fromCell.Clear()
	toCell.SetPiece(p)

	inCheck := IsCheck(b, p.Colour())

	toCell.Clear()
	fromCell.SetPiece(p)
	if captured != nil {
		toCell.SetPiece(captured)
	}
	if victim != nil {
		victimCell.SetPiece(victim)
	}
	return !inCheck
}

// CannotMoveWithoutMate returns true if no piece of colour has a legal
// destination. Together with IsCheck it tells checkmate from stalemate.
func CannotMoveWithoutMate(b *chess.Board, colour chess.Colour) bool {
	for _, p := range b.Pieces(colour) {
		if len(ValidCells(b, p)) > 0 {
			return false
		}
	}
	return true
}

// LegalMoves returns every legal (from, to) pair of colour in file-major
// order of the moving piece. Promotions appear once, without a piece choice.
func LegalMoves(b *chess.Board, colour chess.Colour) []chess.Move {
	var out []chess.Move
	for _, p := range b.Pieces(colour) {
		from, _ := p.Square()
		for _, to := range ValidCells(b, p) {
			out = append(out, chess.NewMove(from, to))
		}
	}
	return out
}

// IsLegal returns true if m is a legal move for the piece on its origin.
func IsLegal(b *chess.Board, m chess.Move) bool {
	p := b.PieceAt(m.From)
	if p == nil {
		return false
	}
	for _, to := range ValidCells(b, p) {
		if to == m.To {
			return true
		}
	}
	return false
}
