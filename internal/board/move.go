package board

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// MoveKind tags the variant held by a Move.
type MoveKind uint8

const (
	PlainMove MoveKind = iota
	PromotionMove
	KingSideCastle
	QueenSideCastle
)

// String returns the move kind name.
func (k MoveKind) String() string {
	switch k {
	case PlainMove:
		return "plain"
	case PromotionMove:
		return "promotion"
	case KingSideCastle:
		return "king-side castle"
	case QueenSideCastle:
		return "queen-side castle"
	default:
		return fmt.Sprintf("move-kind(%d)", uint8(k))
	}
}

// Move is a tagged union:
//
//	PlainMove:        From, To
//	PromotionMove:    From, To, Promote
//	KingSideCastle:   Color
//	QueenSideCastle:  Color
//
// Fields that do not belong to the variant are zero. Moves carry no board reference;
// legality is decided by MoveGen.
type Move struct {
	Kind    MoveKind
	From    Coord
	To      Coord
	Promote Piece
	Color   Color
}

// NewMove creates a plain move.
func NewMove(from, to Coord) Move {
	return Move{Kind: PlainMove, From: from, To: to}
}

// NewPromotion creates a promotion move. The promoted piece lands with the cooldown it carries.
func NewPromotion(from, to Coord, p Piece) Move {
	return Move{Kind: PromotionMove, From: from, To: to, Promote: p}
}

// NewKingSideCastle creates a king-side castle for c.
func NewKingSideCastle(c Color) Move {
	return Move{Kind: KingSideCastle, Color: c}
}

// NewQueenSideCastle creates a queen-side castle for c.
func NewQueenSideCastle(c Color) Move {
	return Move{Kind: QueenSideCastle, Color: c}
}

// Target returns the destination square of plain and promotion moves.
// Castles report false.
func (m Move) Target() (Coord, bool) {
	switch m.Kind {
	case PlainMove, PromotionMove:
		return m.To, true
	case KingSideCastle, QueenSideCastle:
		return Coord{}, false
	default:
		panic(fmt.Sprintf("board: unhandled %v", m.Kind))
	}
}

// IsCastle returns true for both castling variants.
func (m Move) IsCastle() bool {
	return m.Kind == KingSideCastle || m.Kind == QueenSideCastle
}

// Equal compares two moves variant by variant. Promotion pieces compare by kind and color.
func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind {
		return false
	}
	switch m.Kind {
	case PlainMove:
		return m.From == o.From && m.To == o.To
	case PromotionMove:
		return m.From == o.From && m.To == o.To && m.Promote.Equal(o.Promote)
	case KingSideCastle, QueenSideCastle:
		return m.Color == o.Color
	default:
		panic(fmt.Sprintf("board: unhandled %v", m.Kind))
	}
}

// String returns coordinate notation ("e2e4", "e7e8q") or "O-O"/"O-O-O" prefixed by color.
func (m Move) String() string {
	switch m.Kind {
	case PlainMove:
		return m.From.String() + m.To.String()
	case PromotionMove:
		return m.From.String() + m.To.String() + string(m.Promote.Kind.Char())
	case KingSideCastle:
		return m.Color.String() + " O-O"
	case QueenSideCastle:
		return m.Color.String() + " O-O-O"
	default:
		panic(fmt.Sprintf("board: unhandled %v", m.Kind))
	}
}

// ContainsMove reports whether moves holds a move equal to m.
func ContainsMove(moves []Move, m Move) bool {
	return lo.ContainsBy(moves, func(candidate Move) bool {
		return candidate.Equal(m)
	})
}

// ParseCastle parses "O-O" or "O-O-O" (zeros also accepted) for the given color.
func ParseCastle(s string, c Color) (Move, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, "0", "O")) {
	case "O-O":
		return NewKingSideCastle(c), nil
	case "O-O-O":
		return NewQueenSideCastle(c), nil
	}
	return Move{}, fmt.Errorf("invalid castle: %s", s)
}

// ParseMove parses a coordinate-notation move string against the board it is meant for.
// A king leaving its home square by two files is read as a castle.
func ParseMove(s string, b *Board) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseCoord(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseCoord(s[2:4])
	if err != nil {
		return Move{}, err
	}

	piece, ok := b.PieceAt(from)
	if !ok {
		return Move{}, fmt.Errorf("no piece at %s", from)
	}

	// Check for promotion
	if len(s) == 5 {
		var kind PieceKind
		switch s[4] {
		case 'n':
			kind = Knight
		case 'b':
			kind = Bishop
		case 'r':
			kind = Rook
		case 'q':
			kind = Queen
		default:
			return Move{}, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, NewPiece(kind, piece.Color).Reset()), nil
	}

	if piece.Kind == King && from == homeKing(piece.Color) && from.Rank == to.Rank {
		switch to.File - from.File {
		case 2:
			return NewKingSideCastle(piece.Color), nil
		case -2:
			return NewQueenSideCastle(piece.Color), nil
		}
	}

	return NewMove(from, to), nil
}
