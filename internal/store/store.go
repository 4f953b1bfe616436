// internal/store/store.go
//
// Persistence interface for game snapshots: the synchronized store the
// rest of the system treats as an external collaborator.
// Implementations may be backed by memory (this package), SQLite (this
// package), or a hosted realtime database.
//
// Semantics the interface promises:
//   - Patch merges top-level fields into the stored record; concurrent
//     patches are last-write-wins per write, there is no test-and-set.
//   - Watch pushes a snapshot on subscribe (when one exists) and after
//     every subsequent write; errors travel on the same channel so "not
//     found" and "read failed" are distinct from "no change yet".
//   - Stores hand out deep clones; callers can never mutate shared state.

package store

import (
	"context"
	"errors"

	"github.com/rsheyd/girlfriend-mode/internal/game"
)

var (
	// ErrNotFound is returned for reads and writes against unknown ids.
	ErrNotFound = errors.New("game not found")

	// ErrExists is returned by Create when the id is already taken.
	ErrExists = errors.New("game already exists")

	// ErrBadQueryField is returned by Query for unindexed fields.
	ErrBadQueryField = errors.New("unsupported query field")
)

// Queryable player-slot fields, matching the persisted attribute names.
const (
	FieldPlayer1 = "player1Uid"
	FieldPlayer2 = "player2Uid"
)

// Event is one delivery on a Watch channel: a fresh snapshot or an error.
// Exactly one of Game and Err is set.
type Event struct {
	Game *game.Game
	Err  error
}

// Store defines the persistence surface for games.
type Store interface {
	// Create persists a brand-new game under id. ErrExists if taken.
	Create(ctx context.Context, id string, g *game.Game) error

	// Get returns a clone of the snapshot, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Patch merges the given top-level fields into the stored record and
	// notifies watchers. ErrNotFound for unknown ids.
	Patch(ctx context.Context, id string, p game.Patch) error

	// Delete removes the game and terminates its watchers.
	Delete(ctx context.Context, id string) error

	// Query returns all games (keyed by id) whose field equals value.
	// Only the player-slot fields are supported.
	Query(ctx context.Context, field, value string) (map[string]*game.Game, error)

	// Watch delivers the current snapshot and every later change until ctx
	// is done or the game is deleted. The channel is closed on teardown.
	Watch(ctx context.Context, id string) (<-chan Event, error)
}

// ListByPlayer queries both player-slot fields for uid and merges the
// results, which is how "my games" is answered without a dedicated index.
func ListByPlayer(ctx context.Context, s Store, uid string) (map[string]*game.Game, error) {
	out, err := s.Query(ctx, FieldPlayer1, uid)
	if err != nil {
		return nil, err
	}
	second, err := s.Query(ctx, FieldPlayer2, uid)
	if err != nil {
		return nil, err
	}
	for id, g := range second {
		out[id] = g
	}
	return out, nil
}
