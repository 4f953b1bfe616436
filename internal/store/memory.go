// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for ephemeral games,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores deep clones keyed by game id in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Watchers are fed through the shared watch hub after every write.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/rsheyd/girlfriend-mode/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by game id
	hub   *watchHub
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		games: make(map[string]*game.Game),
		hub:   newWatchHub(),
	}
}

// Create stores a clone of g under id, rejecting duplicates.
// Publishes happen while the store lock is held so watchers observe
// writes in order.
func (m *memory) Create(ctx context.Context, id string, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.games[id]; taken {
		return ErrExists
	}
	clone := g.Clone()
	m.games[id] = clone
	m.hub.publish(id, Event{Game: clone.Clone()})
	return nil
}

// Get looks up a game by id and returns an independent clone.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

// Patch merges the patch into the stored record and notifies watchers.
func (m *memory) Patch(ctx context.Context, id string, p game.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	next := g.Clone()
	p.Apply(next)
	m.games[id] = next
	m.hub.publish(id, Event{Game: next.Clone()})
	return nil
}

// Delete removes the game and closes its watchers with ErrNotFound.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	m.hub.closeAll(id, Event{Err: ErrNotFound})
	return nil
}

// Query scans for games whose player-slot field equals value.
func (m *memory) Query(ctx context.Context, field, value string) (map[string]*game.Game, error) {
	if field != FieldPlayer1 && field != FieldPlayer2 {
		return nil, ErrBadQueryField
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]*game.Game)
	for id, g := range m.games {
		v := g.Player1UID
		if field == FieldPlayer2 {
			v = g.Player2UID
		}
		if v == value {
			out[id] = g.Clone()
		}
	}
	return out, nil
}

// Watch subscribes to id, delivering the current snapshot immediately and
// every later change until ctx ends or the game is deleted.
func (m *memory) Watch(ctx context.Context, id string) (<-chan Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.hub.subscribe(ctx, id, &Event{Game: g.Clone()}), nil
}
