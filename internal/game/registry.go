package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hailam/cooldownchess/internal/board"
	"github.com/hailam/cooldownchess/internal/movecache"
	"github.com/hailam/cooldownchess/internal/wire"
)

// Registry tracks running games by id.
type Registry struct {
	start board.Board
	cache *movecache.Cache

	mu    sync.RWMutex
	games map[string]*Game
}

// NewRegistry creates a registry whose games start from start and share cache.
func NewRegistry(start board.Board, cache *movecache.Cache) *Registry {
	return &Registry{
		start: start,
		cache: cache,
		games: make(map[string]*Game),
	}
}

// Create starts a new game. An empty id gets a random one.
func (r *Registry) Create(id string) (*Game, error) {
	if id == "" {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; ok {
		return nil, fmt.Errorf("%w: %s", ErrGameExists, id)
	}
	g := New(id, r.start, r.cache)
	r.games[id] = g
	log.Info().Str("game", id).Msg("game created")
	return g, nil
}

// Join returns the game with the given id, creating it if needed. Lookup and creation happen
// under one lock, so concurrent joins of a new id share a single game.
func (r *Registry) Join(id string) (*Game, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrUnknownGame)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.games[id]; ok {
		return g, nil
	}
	g := New(id, r.start, r.cache)
	r.games[id] = g
	log.Info().Str("game", id).Msg("game created")
	return g, nil
}

// Get looks up a game.
func (r *Registry) Get(id string) (*Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return g, nil
}

// Remove drops a game. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.games, id)
	r.mu.Unlock()
}

// IDs returns the ids of all games.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.games)
}

func (r *Registry) snapshot() []*Game {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.games)
}

// Tick advances every game by one tick.
func (r *Registry) Tick() {
	for _, g := range r.snapshot() {
		g.Tick()
	}
}

// Run ticks all games every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Tick()
		}
	}
}

// Dispatch decodes a wire command sent for game id and carries it out. A join names its own
// game and ignores id.
func (r *Registry) Dispatch(id string, cmd wire.Command) (wire.Message, error) {
	msg, err := wire.Decode(cmd)
	if err != nil {
		return msg, err
	}

	if !msg.IsMove {
		switch msg.Command.Kind {
		case wire.Join:
			g, err := r.Join(msg.Command.GameID)
			if err != nil {
				return msg, err
			}
			log.Debug().Str("game", g.ID()).Int("replay", len(g.History())).Msg("joined")
		case wire.Leave:
			log.Debug().Str("game", id).Msg("left")
		case wire.Resign:
			g, err := r.Get(id)
			if err != nil {
				return msg, err
			}
			g.Resign()
		}
		return msg, nil
	}

	g, err := r.Get(id)
	if err != nil {
		return msg, err
	}
	return msg, g.Apply(msg.Move)
}
