package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

func castleRight(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case kingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// CanCastle returns true if the given side still holds the right to castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

// Home squares used by castling.
func backRank(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func homeKing(c Color) Coord      { return NewCoord(4, backRank(c)) }
func kingSideRook(c Color) Coord  { return NewCoord(7, backRank(c)) }
func queenSideRook(c Color) Coord { return NewCoord(0, backRank(c)) }

// Board is a position: an 8x8 grid of optional pieces plus castling rights.
// Board is a value type; copying a Board copies the whole position.
//
// Board is not safe for concurrent mutation. ProcessMove and Tick are exclusive-writer
// operations; MoveGen works on its own copy.
type Board struct {
	squares  [8][8]Piece // [rank][file]
	Castling CastlingRights
}

// Empty returns a board with no pieces and no castling rights.
func Empty() Board {
	return Board{}
}

// Standard returns the starting position with all castling rights and every piece ready to move.
func Standard() Board {
	var b Board
	backRow := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b.squares[0][file] = NewPiece(backRow[file], White)
		b.squares[1][file] = NewPiece(Pawn, White)
		b.squares[6][file] = NewPiece(Pawn, Black)
		b.squares[7][file] = NewPiece(backRow[file], Black)
	}
	b.Castling = AllCastling
	return b
}

// PieceAt returns the piece at c. Off-board coordinates read as empty.
func (b *Board) PieceAt(c Coord) (Piece, bool) {
	if !c.IsValid() {
		return Piece{}, false
	}
	p := b.squares[c.Rank][c.File]
	return p, !p.IsEmpty()
}

// IsEmpty returns true if c holds no piece. Off-board coordinates are empty.
func (b *Board) IsEmpty(c Coord) bool {
	_, ok := b.PieceAt(c)
	return !ok
}

// SetPieceAt places p on c; the zero Piece clears the square.
// c must be on the board.
func (b *Board) SetPieceAt(c Coord, p Piece) {
	if !c.IsValid() {
		panic(fmt.Sprintf("board: set on off-board coordinate %+v", c))
	}
	b.squares[c.Rank][c.File] = p
}

// ClearAt empties c.
func (b *Board) ClearAt(c Coord) {
	b.SetPieceAt(c, Piece{})
}

// PieceCount returns the number of occupied squares.
func (b *Board) PieceCount() int {
	n := 0
	b.forEach(func(Coord, Piece) { n++ })
	return n
}

// forEach visits occupied squares rank by rank, a1 first.
func (b *Board) forEach(fn func(Coord, Piece)) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p := b.squares[rank][file]; !p.IsEmpty() {
				fn(NewCoord(file, rank), p)
			}
		}
	}
}

// filter returns a copy of b keeping only the pieces for which keep returns true.
func (b *Board) filter(keep func(Piece) bool) Board {
	out := Board{Castling: b.Castling}
	b.forEach(func(c Coord, p Piece) {
		if keep(p) {
			out.squares[c.Rank][c.File] = p
		}
	})
	return out
}

// FilterByColor returns a new board holding only pieces of color c. Castling rights are copied.
func (b *Board) FilterByColor(c Color) Board {
	return b.filter(func(p Piece) bool { return p.Color == c })
}

// FilterByPiece returns a new board holding only pieces equal to target (cooldown ignored).
func (b *Board) FilterByPiece(target Piece) Board {
	return b.filter(target.Equal)
}

// WithoutPiece returns a new board with every piece equal to target removed (cooldown ignored).
func (b *Board) WithoutPiece(target Piece) Board {
	return b.filter(func(p Piece) bool { return !target.Equal(p) })
}

// CoordOf returns the first square (a1 first, rank by rank) holding a piece equal to target.
func (b *Board) CoordOf(target Piece) (Coord, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if target.Equal(b.squares[rank][file]) {
				return NewCoord(file, rank), true
			}
		}
	}
	return Coord{}, false
}

// KingCoord locates the king of color c.
func (b *Board) KingCoord(c Color) (Coord, bool) {
	return b.CoordOf(NewPiece(King, c))
}

// revokeCastling clears rights tied to a square a king or rook left or was captured on.
func (b *Board) revokeCastling(sq Coord) {
	for _, c := range [2]Color{White, Black} {
		switch sq {
		case homeKing(c):
			b.Castling &^= castleRight(c, true) | castleRight(c, false)
		case kingSideRook(c):
			b.Castling &^= castleRight(c, true)
		case queenSideRook(c):
			b.Castling &^= castleRight(c, false)
		}
	}
}

// ProcessMove applies m without checking legality. Callers must validate m with
// IsValidMove (or a MoveGen) first; an illegal move leaves the board in an unspecified state.
func (b *Board) ProcessMove(m Move) {
	switch m.Kind {
	case PlainMove:
		if p, ok := b.PieceAt(m.From); ok {
			b.SetPieceAt(m.To, p.Reset())
		}
		b.ClearAt(m.From)
		b.revokeCastling(m.From)
		b.revokeCastling(m.To)

	case PromotionMove:
		b.ClearAt(m.From)
		b.SetPieceAt(m.To, m.Promote)
		b.revokeCastling(m.From)
		b.revokeCastling(m.To)

	case KingSideCastle, QueenSideCastle:
		c := m.Color
		kingSide := m.Kind == KingSideCastle
		b.Castling &^= castleRight(c, true) | castleRight(c, false)

		rank := backRank(c)
		rookFrom, kingTo, rookTo := queenSideRook(c), NewCoord(2, rank), NewCoord(3, rank)
		if kingSide {
			rookFrom, kingTo, rookTo = kingSideRook(c), NewCoord(6, rank), NewCoord(5, rank)
		}
		b.ClearAt(homeKing(c))
		b.ClearAt(rookFrom)
		b.SetPieceAt(kingTo, NewPiece(King, c).Reset())
		b.SetPieceAt(rookTo, NewPiece(Rook, c).Reset())

	default:
		panic(fmt.Sprintf("board: unhandled %v", m.Kind))
	}
}

// Tick removes one TickRate from every cooldown, stopping at zero.
func (b *Board) Tick() {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := &b.squares[rank][file]
			if p.IsEmpty() {
				continue
			}
			p.Cooldown -= TickRate
			if p.Cooldown < 0 {
				p.Cooldown = 0
			}
		}
	}
}

// KingCheckCount returns how many of the opponent's legal move targets land on the king of
// color c. It returns 0 when c has no king.
func (b *Board) KingCheckCount(c Color) int {
	king, ok := b.KingCoord(c)
	if !ok {
		return 0
	}
	moves := NewMoveGen(b).PossibleMovesForColor(c.Opposite())

	count := 0
	for _, m := range moves {
		if to, ok := m.Target(); ok && to == king {
			count++
		}
	}
	return count
}

// InCheck returns true if the king of color c is attacked.
func (b *Board) InCheck(c Color) bool {
	return b.KingCheckCount(c) > 0
}

// IsValidMove returns true if m is in the legal move set of the position.
func (b *Board) IsValidMove(m Move) bool {
	return ContainsMove(NewMoveGen(b).PossibleMoves(), m)
}

// Validate checks the one-king-per-color convention. Boards violating it are still usable;
// check logic treats a missing king as "never in check".
func (b *Board) Validate() error {
	for _, c := range [2]Color{White, Black} {
		if n := b.FilterByPiece(NewPiece(King, c)); n.PieceCount() != 1 {
			return fmt.Errorf("%s must have exactly one king, has %d", c, n.PieceCount())
		}
	}
	return nil
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.squares[rank][file]
			if p.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	fmt.Fprintf(&sb, "Castling: %s\n", b.Castling)
	return sb.String()
}

// RenderTargets draws the board marking move destinations: "o" on empty targets, "*" in front
// of a piece that can be captured, "~" behind a piece that is still cooling down.
func RenderTargets(b *Board, moves []Move) string {
	targets := targetSet(moves)

	var sb strings.Builder
	sb.WriteString("    a  b  c  d  e  f  g  h\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			c := NewCoord(file, rank)
			p, occupied := b.PieceAt(c)
			hit := targets.Has(c)
			switch {
			case !occupied && hit:
				sb.WriteString(" o ")
			case !occupied:
				sb.WriteString(" . ")
			case hit:
				sb.WriteString("*" + p.String() + " ")
			case !p.Ready():
				sb.WriteString(" " + p.String() + "~")
			default:
				sb.WriteString(" " + p.String() + " ")
			}
		}
		fmt.Fprintf(&sb, " %d\n", rank+1)
	}
	sb.WriteString("    a  b  c  d  e  f  g  h\n")
	return sb.String()
}
