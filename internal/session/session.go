// internal/session/session.go
//
// Per-client staging state for an in-progress move (the "move assembler").
// A Session is the explicit, local mirror of one player's view: the dense
// board, their rack, and which cells are staged (placed this move, still
// movable) versus locked (committed earlier, immutable).
//
// Nothing here touches the store. Staged tiles are never persisted; commit
// goes through game.ScoreMove/game.Commit and the session is re-hydrated
// from the next snapshot. A client that walks away simply loses its staged
// state, which is the intended behavior.
//
// Mutating operations that cannot apply (occupied target, locked source,
// unknown tile) are no-ops reporting false rather than errors: they map to
// input gestures that just don't land.

package session

import (
	"github.com/rsheyd/girlfriend-mode/internal/game"
)

// Session holds one player's local, not-yet-persisted view of a game.
type Session struct {
	UID   string
	Board game.Board  // locked + staged occupancy
	Rack  []game.Tile // tiles currently in hand

	staged   map[game.Coord]bool
	locked   map[game.Coord]bool
	selected string // rack tile id picked for click-to-place, "" if none
}

// New returns an empty session for uid. Call Hydrate before use.
func New(uid string) *Session {
	return &Session{
		UID:    uid,
		Board:  game.Board{},
		staged: map[game.Coord]bool{},
		locked: map[game.Coord]bool{},
	}
}

// Hydrate rebuilds the session from a fresh snapshot. Every occupied cell
// of the hydrated board is locked (staged tiles are never persisted
// mid-move) and any local staged state is discarded: the snapshot is the
// sole source of truth.
func (s *Session) Hydrate(g *game.Game) {
	s.Board = game.BoardFromSparse(g.Board)
	s.locked = make(map[game.Coord]bool, len(s.Board))
	for c := range s.Board {
		s.locked[c] = true
	}
	s.staged = map[game.Coord]bool{}
	s.Rack = append([]game.Tile(nil), g.Racks[s.UID]...)
	s.selected = ""
}

// Select marks a rack tile for click-to-place. Returns false if the tile
// is not in the rack.
func (s *Session) Select(tileID string) bool {
	if s.rackIndex(tileID) < 0 {
		return false
	}
	s.selected = tileID
	return true
}

// Deselect clears the selection.
func (s *Session) Deselect() { s.selected = "" }

// Selected returns the selected rack tile id, or "".
func (s *Session) Selected() string { return s.selected }

// PlaceSelected drops the selected rack tile on c and clears the
// selection. No-op (false) without a selection.
func (s *Session) PlaceSelected(c game.Coord) bool {
	if s.selected == "" {
		return false
	}
	ok := s.Place(s.selected, c)
	if ok {
		s.selected = ""
	}
	return ok
}

// Place moves a tile from the rack onto an empty board cell and stages it.
// Fails silently on an occupied or out-of-bounds cell, or a tile that is
// not in the rack.
func (s *Session) Place(tileID string, c game.Coord) bool {
	if !c.InBounds() || s.Board.Occupied(c) {
		return false
	}
	i := s.rackIndex(tileID)
	if i < 0 {
		return false
	}
	s.Board[c] = s.Rack[i]
	s.Rack = append(s.Rack[:i], s.Rack[i+1:]...)
	s.staged[c] = true
	return true
}

// Recall lifts a staged tile off the board and returns it to the end of
// the rack. Locked tiles never move; recalling them is a no-op.
func (s *Session) Recall(c game.Coord) bool {
	if !s.staged[c] {
		return false
	}
	t, ok := s.Board.At(c)
	if !ok {
		return false
	}
	delete(s.Board, c)
	delete(s.staged, c)
	s.Rack = append(s.Rack, t)
	return true
}

// Relocate moves a staged tile to another empty cell, keeping its staged
// membership. Locked sources and occupied targets are no-ops.
func (s *Session) Relocate(from, to game.Coord) bool {
	if !s.staged[from] || !to.InBounds() || s.Board.Occupied(to) {
		return false
	}
	t, ok := s.Board.At(from)
	if !ok {
		return false
	}
	delete(s.Board, from)
	delete(s.staged, from)
	s.Board[to] = t
	s.staged[to] = true
	return true
}

// Reset returns every staged tile to the rack and clears the staged set
// and selection. Idempotent when nothing is staged.
func (s *Session) Reset() {
	for c := range s.staged {
		if t, ok := s.Board.At(c); ok {
			s.Rack = append(s.Rack, t)
		}
		delete(s.Board, c)
	}
	s.staged = map[game.Coord]bool{}
	s.selected = ""
}

// Staged returns a copy of the staged cell set.
func (s *Session) Staged() map[game.Coord]bool {
	out := make(map[game.Coord]bool, len(s.staged))
	for c := range s.staged {
		out[c] = true
	}
	return out
}

// HasStaged reports whether any tile is staged.
func (s *Session) HasStaged() bool { return len(s.staged) > 0 }

// Locked reports whether c holds a committed tile.
func (s *Session) Locked(c game.Coord) bool { return s.locked[c] }

// Opening reports whether the board holds no committed tile anywhere,
// i.e. the next commit is the game's first move.
func (s *Session) Opening() bool { return len(s.locked) == 0 }

// ScoreStaged validates and scores the staged move against grid.
func (s *Session) ScoreStaged(grid game.MultiplierGrid) (game.MoveResult, error) {
	return game.ScoreMove(s.staged, s.Board, grid, s.Opening())
}

func (s *Session) rackIndex(tileID string) int {
	for i, t := range s.Rack {
		if t.ID == tileID {
			return i
		}
	}
	return -1
}
