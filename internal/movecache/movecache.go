// Package movecache memoizes legal move sets by board hash.
package movecache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/hailam/cooldownchess/internal/board"
)

// DefaultSize is the number of move sets kept when no size is configured.
const DefaultSize = 4096

// Cache maps Board.Hash to the legal move set of that position.
// Boards that hash equal have the same pieces on the same squares, the same ready pieces and the
// same castling rights, which is everything move generation looks at.
type Cache struct {
	cache *ristretto.Cache[uint64, []board.Move]
}

// New creates a cache holding up to size move sets.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := ristretto.NewCache(&ristretto.Config[uint64, []board.Move]{
		NumCounters: int64(size) * 10,
		MaxCost:     int64(size),
		BufferItems: 64,
		Metrics:     true,

		// Each move set costs 1, so MaxCost counts move sets.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create move cache: %w", err)
	}
	return &Cache{cache: c}, nil
}

// Moves returns the legal moves of b, generating them on a miss. The returned slice is shared
// with the cache and must not be modified.
func (c *Cache) Moves(b *board.Board) []board.Move {
	key := b.Hash()
	if moves, ok := c.cache.Get(key); ok {
		return moves
	}

	moves := board.NewMoveGen(b).PossibleMoves()
	if moves == nil {
		moves = []board.Move{}
	}
	c.cache.Set(key, moves, 1)
	return moves
}

// IsValid reports whether m is legal on b.
func (c *Cache) IsValid(b *board.Board, m board.Move) bool {
	return board.ContainsMove(c.Moves(b), m)
}

// Wait blocks until buffered writes are visible to Get.
func (c *Cache) Wait() {
	c.cache.Wait()
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	return c.cache.Metrics.Ratio() * 100
}

// Clear drops every cached move set.
func (c *Cache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	c.cache.Close()
}
