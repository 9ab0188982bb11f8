package board

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// MoveGen computes legal moves for one board snapshot. It holds its own copy of the board,
// so later mutations of the caller's board do not affect it, and it is safe for concurrent use.
type MoveGen struct {
	board Board
}

// NewMoveGen creates a move generator bound to a snapshot of b.
func NewMoveGen(b *Board) *MoveGen {
	return &MoveGen{board: *b}
}

// Board returns the snapshot the generator works on.
func (g *MoveGen) Board() Board {
	return g.board
}

// PossibleMoves returns the legal moves of every piece on the board, both colors.
func (g *MoveGen) PossibleMoves() []Move {
	return g.collect(func(Piece) bool { return true })
}

// PossibleMovesForColor returns the legal moves of the pieces of color c.
func (g *MoveGen) PossibleMovesForColor(c Color) []Move {
	return g.collect(func(p Piece) bool { return p.Color == c })
}

// collect fans per-square generation out to one worker per occupied square and joins the
// results in board order.
func (g *MoveGen) collect(keep func(Piece) bool) []Move {
	type job struct {
		at    Coord
		piece Piece
	}
	var jobs []job
	g.board.forEach(func(c Coord, p Piece) {
		if keep(p) {
			jobs = append(jobs, job{at: c, piece: p})
		}
	})
	if len(jobs) == 0 {
		return nil
	}

	results := make([][]Move, len(jobs))
	eg := errgroup.Group{}
	eg.SetLimit(len(jobs))
	for i, j := range jobs {
		eg.Go(func() error {
			results[i] = g.ForPiece(j.piece, j.at)
			return nil
		})
	}
	// Workers always return nil.
	_ = eg.Wait()

	return lo.Flatten(results)
}

// ForPiece dispatches to the generator for the piece's kind. The piece does not need to be on
// the board at pos.
func (g *MoveGen) ForPiece(p Piece, pos Coord) []Move {
	switch p.Kind {
	case Pawn:
		return g.ForPawn(p, pos)
	case Knight:
		return g.ForKnight(p, pos)
	case Bishop:
		return g.ForBishop(p, pos)
	case Rook:
		return g.ForRook(p, pos)
	case Queen:
		return g.ForQueen(p, pos)
	case King:
		return g.ForKing(p, pos)
	default:
		panic(fmt.Sprintf("board: no generator for %v", p.Kind))
	}
}

// pawnRanks returns the push direction, double-step rank and promotion rank for c.
func pawnRanks(c Color) (dir, start, promotion int) {
	if c == White {
		return 1, 1, 7
	}
	return -1, 6, 0
}

// ForPawn generates single and double pushes, diagonal captures and promotions.
func (g *MoveGen) ForPawn(p Piece, pos Coord) []Move {
	if !p.Ready() {
		return nil
	}
	dir, start, promotion := pawnRanks(p.Color)

	var moves []Move
	add := func(to Coord) {
		if to.Rank == promotion {
			moves = append(moves, promotions(pos, to, p.Color)...)
			return
		}
		moves = append(moves, NewMove(pos, to))
	}

	for _, df := range [2]int{-1, 1} {
		capture := pos.Offset(df, dir)
		if target, ok := g.board.PieceAt(capture); ok && target.Color != p.Color {
			add(capture)
		}
	}

	forward := pos.Offset(0, dir)
	if forward.IsValid() && g.board.IsEmpty(forward) {
		add(forward)

		double := pos.Offset(0, 2*dir)
		if pos.Rank == start && double.IsValid() && g.board.IsEmpty(double) {
			moves = append(moves, NewMove(pos, double))
		}
	}

	return g.withoutSelfCheck(moves, p)
}

// promotions expands a pawn arrival on the last rank into one move per promotion kind.
// Promoted pieces carry their standard cooldown.
func promotions(from, to Coord, c Color) []Move {
	return lo.Map(PromotionKinds[:], func(k PieceKind, _ int) Move {
		return NewPromotion(from, to, NewPiece(k, c).Reset())
	})
}

var knightOffsets = [8][2]int{
	{-1, -2}, {1, -2}, {-2, -1}, {2, -1},
	{-2, 1}, {2, 1}, {-1, 2}, {1, 2},
}

// ForKnight generates the eight L-shaped jumps.
func (g *MoveGen) ForKnight(p Piece, pos Coord) []Move {
	if !p.Ready() {
		return nil
	}

	var moves []Move
	for _, off := range knightOffsets {
		to := pos.Offset(off[0], off[1])
		if g.canLand(to, p.Color) {
			moves = append(moves, NewMove(pos, to))
		}
	}
	return g.withoutSelfCheck(moves, p)
}

var (
	rookRays   = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	bishopRays = [4][2]int{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}
)

// ForRook generates moves along ranks and files.
func (g *MoveGen) ForRook(p Piece, pos Coord) []Move {
	if !p.Ready() {
		return nil
	}
	return g.withoutSelfCheck(g.slide(p, pos, rookRays), p)
}

// ForBishop generates moves along diagonals.
func (g *MoveGen) ForBishop(p Piece, pos Coord) []Move {
	if !p.Ready() {
		return nil
	}
	return g.withoutSelfCheck(g.slide(p, pos, bishopRays), p)
}

// ForQueen is the union of bishop and rook moves.
func (g *MoveGen) ForQueen(p Piece, pos Coord) []Move {
	return append(g.ForBishop(p, pos), g.ForRook(p, pos)...)
}

// slide walks each ray until the edge, stopping before a friendly piece and on an enemy one.
func (g *MoveGen) slide(p Piece, pos Coord, rays [4][2]int) []Move {
	var moves []Move
	for _, ray := range rays {
		to := pos.Offset(ray[0], ray[1])
		for to.IsValid() {
			if target, ok := g.board.PieceAt(to); ok {
				if target.Color != p.Color {
					moves = append(moves, NewMove(pos, to))
				}
				break
			}
			moves = append(moves, NewMove(pos, to))
			to = to.Offset(ray[0], ray[1])
		}
	}
	return moves
}

// canLand reports whether a piece of color c may end on to: on the board and not friendly.
func (g *MoveGen) canLand(to Coord, c Color) bool {
	if !to.IsValid() {
		return false
	}
	target, ok := g.board.PieceAt(to)
	return !ok || target.Color != c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// adjacent reports whether two squares touch, diagonals included.
func adjacent(a, b Coord) bool {
	return abs(a.File-b.File) <= 1 && abs(a.Rank-b.Rank) <= 1
}

// ForKing generates single steps that do not touch the enemy king and cannot be captured on
// arrival, plus castling.
func (g *MoveGen) ForKing(p Piece, pos Coord) []Move {
	if !p.Ready() {
		return nil
	}
	enemy := p.Color.Opposite()
	enemyKing, hasEnemyKing := g.board.KingCoord(enemy)

	var moves []Move
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			to := pos.Offset(df, dr)
			if to == pos || !g.canLand(to, p.Color) {
				continue
			}
			if hasEnemyKing && adjacent(enemyKing, to) {
				continue
			}
			if g.attackedAfterKingStep(p, to) {
				continue
			}
			moves = append(moves, NewMove(pos, to))
		}
	}

	return append(moves, g.castles(p, pos)...)
}

// attackedAfterKingStep asks whether the opponent could capture the king on to. The threat
// board keeps only enemy pieces, drops the enemy king and puts ours on to; without the enemy
// king the nested generation never recurses into another king search.
func (g *MoveGen) attackedAfterKingStep(king Piece, to Coord) bool {
	enemy := king.Color.Opposite()
	threat := g.board.FilterByColor(enemy)
	threat.SetPieceAt(to, king)
	threat = threat.WithoutPiece(NewPiece(King, enemy))

	moves := NewMoveGen(&threat).PossibleMovesForColor(enemy)
	return targetSet(moves).Has(to)
}

// castles offers O-O and O-O-O when the right is held, the king stands on its home square,
// the lane between king and rook is empty and the corner holds a rook of the same color.
// Squares the king passes are not checked for attacks.
func (g *MoveGen) castles(king Piece, pos Coord) []Move {
	c := king.Color
	if pos != homeKing(c) {
		return nil
	}
	rank := backRank(c)
	rook := NewPiece(Rook, c)

	laneEmpty := func(files ...int) bool {
		return lo.EveryBy(files, func(f int) bool { return g.board.IsEmpty(NewCoord(f, rank)) })
	}
	rookOn := func(sq Coord) bool {
		p, ok := g.board.PieceAt(sq)
		return ok && p.Equal(rook)
	}

	var moves []Move
	if g.board.Castling.CanCastle(c, true) && laneEmpty(5, 6) && rookOn(kingSideRook(c)) {
		moves = append(moves, NewKingSideCastle(c))
	}
	if g.board.Castling.CanCastle(c, false) && laneEmpty(1, 2, 3) && rookOn(queenSideRook(c)) {
		moves = append(moves, NewQueenSideCastle(c))
	}
	return moves
}

// withoutSelfCheck drops moves after which the opponent could reach our king's square.
//
// The test is a single ply on a reduced board: only the enemy pieces plus the moved piece on
// its destination. Our other pieces are not on that board, so they do not block enemy lines,
// and an enemy pawn push onto our king's square counts as an attack. Without a king of the
// mover's color every move passes.
func (g *MoveGen) withoutSelfCheck(moves []Move, p Piece) []Move {
	if len(moves) == 0 {
		return moves
	}
	king, ok := g.board.KingCoord(p.Color)
	if !ok {
		return moves
	}
	enemy := p.Color.Opposite()

	return lo.Reject(moves, func(m Move, _ int) bool {
		to, ok := m.Target()
		if !ok {
			return false
		}
		threat := g.board.FilterByColor(enemy)
		threat.SetPieceAt(to, p)
		return targetSet(NewMoveGen(&threat).PossibleMovesForColor(enemy)).Has(king)
	})
}
