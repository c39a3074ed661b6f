package chess

import "fmt"

// Square is a board coordinate. File 0-7 maps to 'a'-'h' and rank 0-7
// maps to '1'-'8'.
type Square struct {
	File int
	Rank int
}

// NoSquare is returned by lookups that find nothing.
var NoSquare = Square{File: -1, Rank: -1}

// Sq is a shorthand constructor.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// ParseSquare converts algebraic text such as "e4" to a square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	sq := Square{File: int(s[0]) - 'a', Rank: int(s[1]) - '1'}
	if !sq.Valid() {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}

// MustParseSquare is like ParseSquare but panics on bad input.
// Intended for tables and tests.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// Valid returns true if the square is on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// String returns the algebraic form, or "-" for an off-board square.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// Less orders squares file-major, then by rank.
func (s Square) Less(o Square) bool {
	if s.File != o.File {
		return s.File < o.File
	}
	return s.Rank < o.Rank
}

// Offset returns the square displaced by df files and dr ranks.
// The result may be off the board.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// Index returns the arena slot of the square (0-63), or -1 when off board.
func (s Square) Index() int {
	if !s.Valid() {
		return -1
	}
	return s.File*BoardSize + s.Rank
}

// SquareAt is the inverse of Index.
func SquareAt(index int) Square {
	return Square{File: index / BoardSize, Rank: index % BoardSize}
}
