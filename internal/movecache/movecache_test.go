package movecache

import (
	"testing"

	"github.com/matryer/is"

	"github.com/hailam/cooldownchess/internal/board"
)

func TestMoves(t *testing.T) {
	is := is.New(t)
	c, err := New(16)
	is.NoErr(err)
	defer c.Close()

	b := board.Standard()
	is.Equal(len(c.Moves(&b)), 40)
	c.Wait()

	// Second lookup is served from the cache and agrees with a fresh generation.
	is.Equal(len(c.Moves(&b)), 40)
	is.True(c.HitRate() > 0)
}

func TestHoldsSizeMoveSets(t *testing.T) {
	is := is.New(t)
	const size = 64
	c, err := New(size)
	is.NoErr(err)
	defer c.Close()

	keys := make([]uint64, 0, size)
	for i := 0; i < size; i++ {
		b := board.Empty()
		b.SetPieceAt(board.CoordFromIndex(uint8(i)), board.NewPiece(board.Knight, board.White))
		c.Moves(&b)
		c.Wait()
		keys = append(keys, b.Hash())
	}

	resident := 0
	for _, k := range keys {
		if _, ok := c.cache.Get(k); ok {
			resident++
		}
	}
	is.Equal(resident, size)
}

func TestMovesFollowReadiness(t *testing.T) {
	is := is.New(t)
	c, err := New(16)
	is.NoErr(err)
	defer c.Close()

	b := board.Standard()
	e2e4 := board.NewMove(board.MustParseCoord("e2"), board.MustParseCoord("e4"))
	is.True(c.IsValid(&b, e2e4))
	c.Wait()

	b.ProcessMove(e2e4)
	e4e5 := board.NewMove(board.MustParseCoord("e4"), board.MustParseCoord("e5"))
	is.True(!c.IsValid(&b, e4e5))
	c.Wait()

	for i := 0; i < board.TicksUntilReady(board.CooldownPawn); i++ {
		b.Tick()
	}
	is.True(c.IsValid(&b, e4e5))
}

func TestEmptyBoard(t *testing.T) {
	is := is.New(t)
	c, err := New(0)
	is.NoErr(err)
	defer c.Close()

	b := board.Empty()
	moves := c.Moves(&b)
	is.True(moves != nil)
	is.Equal(len(moves), 0)
}

func TestClear(t *testing.T) {
	is := is.New(t)
	c, err := New(4)
	is.NoErr(err)
	defer c.Close()

	b := board.Standard()
	c.Moves(&b)
	c.Wait()
	c.Clear()
	is.Equal(len(c.Moves(&b)), 40)
}
