package board

import (
	"fmt"
	"time"
)

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// ParseColor accepts "white"/"w" and "black"/"b".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white", "w", "White":
		return White, true
	case "black", "b", "Black":
		return Black, true
	}
	return White, false
}

// PieceKind represents the type of a chess piece. The zero value means "no piece".
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PromotionKinds are the kinds a pawn may promote to, in generation order.
var PromotionKinds = [4]PieceKind{Queen, Rook, Bishop, Knight}

// String returns the piece kind name.
func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the kind (lowercase).
func (k PieceKind) Char() byte {
	if k > King {
		return ' '
	}
	return " pnbrqk"[k]
}

// Piece is a colored piece with its remaining cooldown. The zero Piece is an empty square.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Cooldown time.Duration
}

// NewPiece creates a piece that is ready to move.
func NewPiece(kind PieceKind, c Color) Piece {
	return Piece{Kind: kind, Color: c}
}

// IsEmpty reports whether p represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Ready reports whether the cooldown has run out.
func (p Piece) Ready() bool {
	return p.Cooldown <= 0
}

// Equal compares kind and color. Cooldown is transient state and is ignored.
func (p Piece) Equal(o Piece) bool {
	return p.Kind == o.Kind && p.Color == o.Color
}

// WithCooldown returns a copy of p with the given cooldown.
func (p Piece) WithCooldown(d time.Duration) Piece {
	p.Cooldown = d
	return p
}

// Reset returns a copy of p with its kind's standard cooldown.
func (p Piece) Reset() Piece {
	return p.WithCooldown(StandardCooldown(p.Kind))
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	ch := p.Kind.Char()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to a ready Piece.
func PieceFromChar(c byte) (Piece, bool) {
	color := Black
	if c >= 'A' && c <= 'Z' {
		color = White
		c += 'a' - 'A'
	}
	switch c {
	case 'p':
		return NewPiece(Pawn, color), true
	case 'n':
		return NewPiece(Knight, color), true
	case 'b':
		return NewPiece(Bishop, color), true
	case 'r':
		return NewPiece(Rook, color), true
	case 'q':
		return NewPiece(Queen, color), true
	case 'k':
		return NewPiece(King, color), true
	default:
		return Piece{}, false
	}
}
