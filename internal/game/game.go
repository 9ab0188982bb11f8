// Package game holds the authoritative state of running cooldown chess games.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hailam/cooldownchess/internal/board"
	"github.com/hailam/cooldownchess/internal/movecache"
)

// Game owns one board. Apply and Tick are serialized by a single mutex; readers get copies.
type Game struct {
	id    string
	cache *movecache.Cache

	mu      sync.Mutex
	board   board.Board
	history []board.Move
	over    bool
}

// New creates a game starting from b. cache may be nil, in which case every move is checked with
// a fresh move generation.
func New(id string, b board.Board, cache *movecache.Cache) *Game {
	return &Game{id: id, board: b, cache: cache}
}

// ID returns the game id.
func (g *Game) ID() string { return g.id }

// Apply validates m against the current position and plays it.
func (g *Game) Apply(m board.Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return ErrGameOver
	}
	if !g.isValid(m) {
		log.Warn().Str("game", g.id).Stringer("move", m).Msg("rejected illegal move")
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}

	g.board.ProcessMove(m)
	g.history = append(g.history, m)
	log.Debug().Str("game", g.id).Stringer("move", m).Int("ply", len(g.history)).Msg("applied move")
	return nil
}

func (g *Game) isValid(m board.Move) bool {
	if g.cache != nil {
		return g.cache.IsValid(&g.board, m)
	}
	return g.board.IsValidMove(m)
}

// Tick advances every cooldown by one tick.
func (g *Game) Tick() {
	g.mu.Lock()
	g.board.Tick()
	g.mu.Unlock()
}

// Run ticks the board every interval until ctx is done.
func (g *Game) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			g.Tick()
		}
	}
}

// Resign ends the game; later moves fail with ErrGameOver.
func (g *Game) Resign() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.over = true
	log.Info().Str("game", g.id).Int("ply", len(g.history)).Msg("game resigned")
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

// Snapshot returns a copy of the current board.
func (g *Game) Snapshot() board.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}

// History returns the moves applied so far, oldest first. Replaying them on the starting board
// reproduces the piece placement.
func (g *Game) History() []board.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]board.Move(nil), g.history...)
}

// Checks returns how many enemy moves currently hit the king of color c.
func (g *Game) Checks(c board.Color) int {
	b := g.Snapshot()
	return b.KingCheckCount(c)
}
