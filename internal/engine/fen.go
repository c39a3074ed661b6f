package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Setup holds the FEN fields that belong to the game rather than the board.
type Setup struct {
	ToMove        chess.Colour
	HalfmoveClock int
}

// castlingCorners lists the castling letters in FEN order with the rook
// square each one refers to.
var castlingCorners = []struct {
	letter byte
	colour chess.Colour
	rook   chess.Square
}{
	{'K', chess.White, chess.Sq(7, 0)},
	{'Q', chess.White, chess.Sq(0, 0)},
	{'k', chess.Black, chess.Sq(7, 7)},
	{'q', chess.Black, chess.Sq(0, 7)},
}

// kingHome returns the square a king of the given colour starts on.
func kingHome(colour chess.Colour) chess.Square {
	return chess.Sq(4, chess.HomeRank(colour))
}

// fenError builds the error returned for a malformed field.
func fenError(field, got string) error {
	return &errors.FENError{Err: errors.ErrInvalidFEN, Field: field, Got: got}
}

// NewBoardFromFEN creates a board from a FEN string. The half-move clock
// and full-move number are optional. Has-moved flags are reconstructed:
// pawns off their start rank have moved, and kings and rooks count as
// unmoved only when a castling letter names them.
// An en-passant target restores the double push that produced it.
// On error no board is returned.
func NewBoardFromFEN(fen string) (*chess.Board, Setup, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return nil, Setup{}, fenError("fields", fen)
	}

	board := chess.NewBoard()
	var setup Setup

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, Setup{}, err
	}
	colour, err := parseSideToMove(parts[1])
	if err != nil {
		return nil, Setup{}, err
	}
	setup.ToMove = colour

	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, Setup{}, err
	}
	if err := parseEnPassant(board, parts[3], setup.ToMove); err != nil {
		return nil, Setup{}, err
	}
	if err := parseClocks(board, &setup, parts[4:]); err != nil {
		return nil, Setup{}, err
	}
	return board, setup, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fenError("placement", positions)
	}
	kings := map[chess.Colour]int{}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind := chess.PieceTypeFromLetter(c)
			if kind == chess.NoPieceType {
				return fenError("placement", string(c))
			}
			if file >= chess.BoardSize {
				return fenError("placement", row)
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			sq := chess.Sq(file, rank)
			if kind == chess.Pawn && (rank == 0 || rank == chess.BoardSize-1) {
				return fenError("placement", "pawn on "+sq.String())
			}
			p := NewPiece(colour, kind)
			p.SetMoved(initiallyMoved(colour, kind, sq))
			board.Place(sq, p)
			if kind == chess.King {
				kings[colour]++
			}
			file++
		}
		if file != chess.BoardSize {
			return fenError("placement", row)
		}
	}

	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fenError("placement", "king count")
	}
	return nil
}

// initiallyMoved decides the has-moved flag from placement alone. A king
// is unmoved on its home square. Rooks start as moved and are cleared by
// their castling letters.
func initiallyMoved(colour chess.Colour, kind chess.PieceType, sq chess.Square) bool {
	switch kind {
	case chess.Pawn:
		return sq.Rank != chess.HomeRank(colour)+chess.PawnDirection(colour)
	case chess.King:
		return sq != kingHome(colour)
	case chess.Rook:
		return true
	}
	return false
}

// parseSideToMove parses the side to move field.
func parseSideToMove(field string) (chess.Colour, error) {
	switch field {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, fenError("side", field)
}

// parseCastlingRights parses the castling availability field. A letter
// marks its corner rook as unmoved. Letters whose rook is absent are
// ignored.
func parseCastlingRights(board *chess.Board, field string) error {
	if field == "-" {
		return nil
	}
	seen := map[byte]bool{}
	for i := 0; i < len(field); i++ {
		c := field[i]
		if seen[c] {
			return fenError("castling", field)
		}
		seen[c] = true

		found := false
		for _, corner := range castlingCorners {
			if corner.letter != c {
				continue
			}
			found = true
			if rook := board.PieceAt(corner.rook); isRook(rook, corner.colour) {
				rook.SetMoved(false)
			}
		}
		if !found {
			return fenError("castling", field)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field and restores
// the double push that produced it.
func parseEnPassant(board *chess.Board, field string, toMove chess.Colour) error {
	if field == "-" {
		return nil
	}
	target, err := chess.ParseSquare(field)
	if err != nil {
		return fenError("en passant", field)
	}
	pusher := toMove.Opposite()
	dir := chess.PawnDirection(pusher)
	if target.Rank != chess.HomeRank(pusher)+2*dir {
		return fenError("en passant", field)
	}
	landing := target.Offset(0, dir)
	origin := target.Offset(0, -dir)
	pawn := board.PieceAt(landing)
	if pawn == nil || pawn.Type() != chess.Pawn || pawn.Colour() != pusher {
		return fenError("en passant", field)
	}
	if board.PieceAt(target) != nil || board.PieceAt(origin) != nil {
		return fenError("en passant", field)
	}
	board.SetLastMove(chess.NewMove(origin, landing))
	board.SetDoublePush(true)
	return nil
}

// parseClocks parses the optional halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, setup *Setup, fields []string) error {
	if len(fields) >= 1 {
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 0 {
			return fenError("halfmove clock", fields[0])
		}
		setup.HalfmoveClock = n
	}
	if len(fields) >= 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return fenError("fullmove number", fields[1])
		}
		board.SetMoveNumber(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board, toMove chess.Colour, halfmove int) string {
	var sb strings.Builder

	writeSimplified(&sb, board, toMove)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", halfmove, board.MoveNumber())

	return sb.String()
}

// SimplifiedFEN returns the first four FEN fields: placement, side to
// move, castling rights and en-passant target. Equal strings mean equal
// positions for repetition purposes.
func SimplifiedFEN(board *chess.Board, toMove chess.Colour) string {
	var sb strings.Builder
	writeSimplified(&sb, board, toMove)
	return sb.String()
}

func writeSimplified(sb *strings.Builder, board *chess.Board, toMove chess.Colour) {
	writePiecePositions(sb, board)
	sb.WriteByte(' ')
	writeSideToMove(sb, toMove)
	sb.WriteByte(' ')
	writeCastlingRights(sb, board)
	sb.WriteByte(' ')
	writeEnPassant(sb, board)
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			p := board.PieceAt(chess.Sq(file, rank))
			if p == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, toMove chess.Colour) {
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes a letter for every corner rook that has never
// moved. The king's own flag does not affect the field.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, corner := range castlingCorners {
		if canCastleWith(board, corner.colour, corner.rook) {
			sb.WriteByte(corner.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

func canCastleWith(board *chess.Board, colour chess.Colour, rookSq chess.Square) bool {
	rook := board.PieceAt(rookSq)
	return isRook(rook, colour) && !rook.HasMoved()
}

func isRook(p *chess.Piece, colour chess.Colour) bool {
	return p != nil && p.Type() == chess.Rook && p.Colour() == colour
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	last, ok := board.LastMove()
	if ok && board.DoublePush() {
		sb.WriteString(last.Middle().String())
	} else {
		sb.WriteByte('-')
	}
}
