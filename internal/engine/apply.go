package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ApplyMove moves the piece on m.From to m.To, discarding any occupant of
// the destination and marking the piece as moved.
//
// Unless castlingSubMove is set, the destination must be one of
// ValidCells for the piece; otherwise the board is left untouched and an
// error wrapping errors.ErrIllegalMove is returned. A regular move records
// itself as the last move, updates the double-push flag and advances the
// full-move number after Black's move. A castling sub-move (the rook leg of
// a castle) does none of these, since it is the second half of one move.
//
// Special-move side effects (rook leg, en-passant victim, promotion) are
// the caller's responsibility.
func ApplyMove(b *chess.Board, m chess.Move, castlingSubMove bool) error {
	p := b.PieceAt(m.From)
	if p == nil {
		return &errors.MoveError{Err: errors.ErrNoPiece, Move: m.String()}
	}
	if !castlingSubMove && !IsLegal(b, m) {
		return &errors.MoveError{Err: errors.ErrIllegalMove, Move: m.String()}
	}
	if castlingSubMove {
		if occupant := b.PieceAt(m.To); occupant != nil && occupant != p {
			return &errors.MoveError{Err: errors.ErrIllegalMove, Move: m.String()}
		}
	}

	b.Remove(m.From)
	b.Remove(m.To)
	b.Place(m.To, p)
	p.SetMoved(true)

	if castlingSubMove {
		return nil
	}
	b.SetDoublePush(p.Type() == chess.Pawn && m.RankDistance() == 2)
	b.SetLastMove(m)
	if p.Colour() == chess.Black {
		b.SetMoveNumber(b.MoveNumber() + 1)
	}
	return nil
}

// Promote replaces the pawn on sq with a new piece of the given type.
func Promote(b *chess.Board, sq chess.Square, kind chess.PieceType) error {
	pawn := b.PieceAt(sq)
	if pawn == nil || pawn.Type() != chess.Pawn {
		return &errors.MoveError{Err: errors.ErrNoPiece, Move: sq.String()}
	}
	if !kind.IsPromotionTarget() {
		return errors.Wrapf(errors.ErrIllegalMove, "cannot promote to %s", kind)
	}
	promoted := NewPiece(pawn.Colour(), kind)
	promoted.SetMoved(true)
	b.Remove(sq)
	b.Place(sq, promoted)
	return nil
}

// MakeMove plays m with all of its side effects: the rook leg of a castle,
// removal of an en-passant victim and promotion. A move reaching the last
// rank without a promotion choice promotes to a queen. The board is not
// modified when the move is illegal.
func MakeMove(b *chess.Board, m chess.Move) error {
	if !IsLegal(b, m) {
		if b.PieceAt(m.From) == nil {
			return &errors.MoveError{Err: errors.ErrNoPiece, Move: m.String()}
		}
		return &errors.MoveError{Err: errors.ErrIllegalMove, Move: m.String()}
	}

	rookLeg, castle := CastlingRookMove(b, m)
	victim, enPassant := EnPassantVictim(b, m)
	promotion := IsPromotion(b, m)
	if promotion && m.Promotion != chess.NoPieceType && !m.Promotion.IsPromotionTarget() {
		return &errors.MoveError{Err: errors.ErrIllegalMove, Move: m.String()}
	}

	if err := ApplyMove(b, m, false); err != nil {
		return err
	}
	if castle {
		if err := ApplyMove(b, rookLeg, true); err != nil {
			return err
		}
	}
	if enPassant {
		b.Remove(victim)
	}
	if promotion {
		kind := m.Promotion
		if kind == chess.NoPieceType {
			kind = chess.Queen
		}
		return Promote(b, m.To, kind)
	}
	return nil
}
