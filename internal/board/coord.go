// Package board implements the cooldown chess position and its legal move generator.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidCoord is returned when a square name cannot be parsed.
var ErrInvalidCoord = errors.New("invalid coordinate")

// Coord is a (file, rank) pair. File 0 is the a-file, rank 0 is the 1st rank.
// Off-board coordinates can be constructed; IsValid reports whether one is on the board.
type Coord struct {
	File int
	Rank int
}

// NewCoord creates a coordinate from file and rank (0-indexed).
func NewCoord(file, rank int) Coord {
	return Coord{File: file, Rank: rank}
}

// ParseCoord parses algebraic notation (e.g., "e4") into a Coord.
func ParseCoord(s string) (Coord, error) {
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}

	c := NewCoord(int(s[0])-'a', int(s[1])-'1')
	if !c.IsValid() {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	return c, nil
}

// MustParseCoord is like ParseCoord but panics on error.
func MustParseCoord(s string) Coord {
	c, err := ParseCoord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsValid returns true if both file and rank lie in [0,8).
func (c Coord) IsValid() bool {
	return c.File >= 0 && c.File < 8 && c.Rank >= 0 && c.Rank < 8
}

// Offset returns the coordinate shifted by df files and dr ranks.
func (c Coord) Offset(df, dr int) Coord {
	return Coord{File: c.File + df, Rank: c.Rank + dr}
}

// Index returns the 0-63 square index (rank*8 + file).
func (c Coord) Index() uint8 {
	return uint8(c.Rank*8 + c.File)
}

// CoordFromIndex is the inverse of Index.
func CoordFromIndex(idx uint8) Coord {
	return Coord{File: int(idx % 8), Rank: int(idx / 8)}
}

// String returns the algebraic notation for the coordinate (e.g., "e4").
// Formatting an off-board file is a programming error.
func (c Coord) String() string {
	if c.File < 0 || c.File > 7 {
		panic(fmt.Sprintf("board: file %d out of range", c.File))
	}
	return fmt.Sprintf("%c%d", 'a'+c.File, c.Rank+1)
}
