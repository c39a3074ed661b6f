// Package notation resolves pre-tokenized algebraic instructions into
// concrete moves against a board.
package notation

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Instruction is a tokenized algebraic move: either Regular or Castling.
type Instruction interface {
	// Side returns the colour making the move.
	Side() chess.Colour
	fmt.Stringer
	instruction()
}

// Regular names a piece type, a destination and an optional disambiguator.
type Regular struct {
	Piece  chess.PieceType
	Colour chess.Colour
	To     chess.Square
	// Disambiguator is a file letter ('a'-'h'), a rank digit ('1'-'8') or 0.
	Disambiguator byte
	// Promotion is the piece a pawn becomes on the last rank, or NoPieceType.
	Promotion chess.PieceType
}

// Castling names a castle; Long selects the queenside.
type Castling struct {
	Colour chess.Colour
	Long   bool
}

func (Regular) instruction()  {}
func (Castling) instruction() {}

// Side returns the colour making the move.
func (r Regular) Side() chess.Colour { return r.Colour }

// Side returns the colour making the move.
func (c Castling) Side() chess.Colour { return c.Colour }

// String returns an algebraic rendering such as "Nbd2" or "e8=Q".
func (r Regular) String() string {
	var sb strings.Builder
	if r.Piece != chess.Pawn {
		sb.WriteByte(r.Piece.Letter())
	}
	if r.Disambiguator != 0 {
		sb.WriteByte(r.Disambiguator)
	}
	sb.WriteString(r.To.String())
	if r.Promotion != chess.NoPieceType {
		sb.WriteByte('=')
		sb.WriteByte(r.Promotion.Letter())
	}
	return sb.String()
}

// String returns "O-O" or "O-O-O".
func (c Castling) String() string {
	if c.Long {
		return "O-O-O"
	}
	return "O-O"
}

// CastlingSquares returns the king and rook legs of a castle for colour.
func CastlingSquares(colour chess.Colour, long bool) (king, rook chess.Move) {
	rank := chess.HomeRank(colour)
	if long {
		return chess.NewMove(chess.Sq(4, rank), chess.Sq(2, rank)),
			chess.NewMove(chess.Sq(0, rank), chess.Sq(3, rank))
	}
	return chess.NewMove(chess.Sq(4, rank), chess.Sq(6, rank)),
		chess.NewMove(chess.Sq(7, rank), chess.Sq(5, rank))
}

// Resolve maps an instruction to a concrete move on b.
//
// A regular instruction matches every piece of its colour and type whose
// raw candidate set contains the destination. Several matches are narrowed
// by the disambiguator and then, if still needed, by legality. Failure is
// reported as a *errors.NotationError wrapping ErrUnresolvedNotation or
// ErrAmbiguousNotation.
func Resolve(b *chess.Board, instr Instruction) (chess.Move, error) {
	switch in := instr.(type) {
	case Castling:
		king, _ := CastlingSquares(in.Colour, in.Long)
		p := b.PieceAt(king.From)
		if p == nil || p.Type() != chess.King || p.Colour() != in.Colour {
			return chess.Move{}, notationError(errors.ErrUnresolvedNotation, in)
		}
		return king, nil
	case Regular:
		return resolveRegular(b, in)
	}
	return chess.Move{}, notationError(errors.ErrUnresolvedNotation, instr)
}

func resolveRegular(b *chess.Board, in Regular) (chess.Move, error) {
	var matches []chess.Square
	for _, p := range b.Pieces(in.Colour) {
		if p.Type() != in.Piece {
			continue
		}
		for _, to := range p.Candidates() {
			if to == in.To {
				sq, _ := p.Square()
				matches = append(matches, sq)
				break
			}
		}
	}

	if len(matches) > 1 && in.Disambiguator != 0 {
		matches = filterSquares(matches, func(sq chess.Square) bool {
			return matchesDisambiguator(sq, in.Disambiguator)
		})
	}
	if len(matches) > 1 {
		matches = filterSquares(matches, func(sq chess.Square) bool {
			return engine.IsLegal(b, chess.NewMove(sq, in.To))
		})
	}

	switch len(matches) {
	case 0:
		return chess.Move{}, notationError(errors.ErrUnresolvedNotation, in)
	case 1:
		return chess.Move{From: matches[0], To: in.To, Promotion: in.Promotion}, nil
	}
	return chess.Move{}, notationError(errors.ErrAmbiguousNotation, in)
}

// matchesDisambiguator compares a file letter or rank digit to sq.
func matchesDisambiguator(sq chess.Square, d byte) bool {
	switch {
	case d >= 'a' && d <= 'h':
		return sq.File == int(d-'a')
	case d >= '1' && d <= '8':
		return sq.Rank == int(d-'1')
	}
	return false
}

func filterSquares(in []chess.Square, keep func(chess.Square) bool) []chess.Square {
	var out []chess.Square
	for _, sq := range in {
		if keep(sq) {
			out = append(out, sq)
		}
	}
	return out
}

func notationError(err error, instr Instruction) error {
	return &errors.NotationError{Err: err, Instruction: instr.String()}
}

// ResolveAll resolves and plays a sequence of instructions on b, starting
// with toMove. It stops at the first instruction that cannot be resolved or
// played and returns the moves played so far with the error.
func ResolveAll(b *chess.Board, toMove chess.Colour, instrs []Instruction) ([]chess.Move, error) {
	moves := make([]chess.Move, 0, len(instrs))
	for i, instr := range instrs {
		if instr.Side() != toMove {
			return moves, &errors.MoveError{Err: errors.ErrWrongTurn, Ply: i + 1, Move: instr.String()}
		}
		m, err := Resolve(b, instr)
		if err != nil {
			return moves, &errors.MoveError{Err: err, Ply: i + 1, Move: instr.String()}
		}
		if err := engine.MakeMove(b, m); err != nil {
			return moves, &errors.MoveError{Err: err, Ply: i + 1, Move: instr.String()}
		}
		moves = append(moves, m)
		toMove = toMove.Opposite()
	}
	return moves, nil
}
