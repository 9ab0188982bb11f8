package board

import (
	"fmt"
	"math/bits"
)

// Bitboard represents a 64-bit square set where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// SquareBB returns a bitboard with only the given square set.
// Off-board coordinates yield the empty set.
func SquareBB(c Coord) Bitboard {
	if !c.IsValid() {
		return 0
	}
	return 1 << c.Index()
}

// Set sets the bit for c.
func (b Bitboard) Set(c Coord) Bitboard {
	return b | SquareBB(c)
}

// Has returns true if the bit for c is set.
func (b Bitboard) Has(c Coord) bool {
	return b&SquareBB(c) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Coords returns the set squares, lowest index first.
func (b Bitboard) Coords() []Coord {
	out := make([]Coord, 0, b.PopCount())
	for b != 0 {
		idx := bits.TrailingZeros64(uint64(b))
		out = append(out, CoordFromIndex(uint8(idx)))
		b &= b - 1
	}
	return out
}

// targetSet collects the destination squares of plain and promotion moves.
func targetSet(moves []Move) Bitboard {
	var bb Bitboard
	for _, m := range moves {
		if to, ok := m.Target(); ok {
			bb = bb.Set(to)
		}
	}
	return bb
}

// Targets returns the set of squares any of moves lands on. Castles contribute nothing.
func Targets(moves []Move) Bitboard {
	return targetSet(moves)
}

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			if b.Has(NewCoord(file, rank)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "  a b c d e f g h\n"
	return s
}
