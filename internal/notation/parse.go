package notation

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// isFile returns true if c is a file letter.
func isFile(c byte) bool {
	return c >= 'a' && c <= 'h'
}

// isRank returns true if c is a rank digit.
func isRank(c byte) bool {
	return c >= '1' && c <= '8'
}

// isCapture returns true if c marks a capture.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':'
}

// pieceLetter returns the piece named by an upper-case SAN letter.
func pieceLetter(c byte) chess.PieceType {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N':
		return chess.PieceTypeFromLetter(c)
	}
	return chess.NoPieceType
}

// Parse tokenizes one SAN move such as "Nbd7", "exd5", "e8=Q+" or "O-O-O"
// for colour. Check marks and annotations are ignored. A full-square
// disambiguator keeps only its file; Resolve narrows further by legality.
func Parse(token string, colour chess.Colour) (Instruction, error) {
	text := strings.TrimRight(token, "+#!?")
	fail := func() (Instruction, error) {
		return nil, &errors.NotationError{Err: errors.ErrUnresolvedNotation, Instruction: token}
	}

	switch strings.ReplaceAll(strings.ToUpper(text), "0", "O") {
	case "O-O":
		return Castling{Colour: colour}, nil
	case "O-O-O":
		return Castling{Colour: colour, Long: true}, nil
	}
	if text == "" {
		return fail()
	}

	in := Regular{Piece: chess.Pawn, Colour: colour}
	if kind := pieceLetter(text[0]); kind != chess.NoPieceType {
		in.Piece = kind
		text = text[1:]
	}

	if in.Piece == chess.Pawn {
		if i := strings.IndexByte(text, '='); i >= 0 {
			if i+2 != len(text) {
				return fail()
			}
			in.Promotion = pieceLetter(text[i+1])
			text = text[:i]
		} else if n := len(text); n >= 3 && isRank(text[n-2]) {
			in.Promotion = pieceLetter(text[n-1])
			if in.Promotion != chess.NoPieceType {
				text = text[:n-1]
			}
		}
		if in.Promotion == chess.King || (in.Promotion == chess.NoPieceType && strings.Contains(token, "=")) {
			return fail()
		}
	}

	text = strings.Map(func(r rune) rune {
		if r < 0x80 && isCapture(byte(r)) {
			return -1
		}
		return r
	}, text)
	if len(text) < 2 || len(text) > 4 {
		return fail()
	}

	to, err := chess.ParseSquare(text[len(text)-2:])
	if err != nil {
		return fail()
	}
	in.To = to

	switch prefix := text[:len(text)-2]; len(prefix) {
	case 0:
	case 1:
		if !isFile(prefix[0]) && !isRank(prefix[0]) {
			return fail()
		}
		in.Disambiguator = prefix[0]
	case 2:
		if !isFile(prefix[0]) || !isRank(prefix[1]) {
			return fail()
		}
		in.Disambiguator = prefix[0]
	}
	if in.Piece == chess.Pawn && in.Disambiguator != 0 && !isFile(in.Disambiguator) {
		return fail()
	}
	if in.Promotion != chess.NoPieceType && in.To.Rank != chess.PromotionRank(colour) {
		return fail()
	}
	return in, nil
}
