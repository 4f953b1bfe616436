package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rsheyd/girlfriend-mode/internal/game"
)

func newHydrated(t *testing.T) (*Session, *game.Game) {
	t.Helper()
	g := game.NewGame("alice", "", rand.New(rand.NewSource(7)), time.Now().UTC())
	s := New("alice")
	s.Hydrate(g)
	return s, g
}

func TestHydrate(t *testing.T) {
	s, g := newHydrated(t)

	if len(s.Rack) != game.RackSize {
		t.Fatalf("rack = %d tiles, want %d", len(s.Rack), game.RackSize)
	}
	if s.HasStaged() {
		t.Error("fresh session must have nothing staged")
	}
	if !s.Opening() {
		t.Error("empty board must be an opening position")
	}

	// A snapshot with committed tiles hydrates them as locked.
	c := game.Coord{Row: 7, Col: 7}
	g.Board[c.Key()] = game.Tile{ID: "x", Letter: "X", Value: 8}
	s.Hydrate(g)
	if !s.Locked(c) {
		t.Error("hydrated occupied cell must be locked")
	}
	if s.Opening() {
		t.Error("board with a committed tile is not an opening position")
	}
}

func TestPlaceAndRecall(t *testing.T) {
	s, _ := newHydrated(t)
	tileID := s.Rack[0].ID
	c := game.Coord{Row: 7, Col: 7}

	if !s.Place(tileID, c) {
		t.Fatal("Place onto empty cell failed")
	}
	if len(s.Rack) != game.RackSize-1 {
		t.Errorf("rack = %d tiles after place, want %d", len(s.Rack), game.RackSize-1)
	}
	if !s.Staged()[c] {
		t.Error("placed cell must be staged")
	}

	// Occupied target is a silent no-op.
	otherID := s.Rack[0].ID
	if s.Place(otherID, c) {
		t.Error("Place onto occupied cell must fail")
	}
	// Unknown tile is a no-op.
	if s.Place("nope", game.Coord{Row: 7, Col: 8}) {
		t.Error("Place of tile not in rack must fail")
	}
	// Off-board is a no-op.
	if s.Place(otherID, game.Coord{Row: 15, Col: 0}) {
		t.Error("Place off the board must fail")
	}

	if !s.Recall(c) {
		t.Fatal("Recall of staged tile failed")
	}
	if len(s.Rack) != game.RackSize {
		t.Errorf("rack = %d tiles after recall, want %d", len(s.Rack), game.RackSize)
	}
	if s.HasStaged() {
		t.Error("staged set must be empty after recall")
	}
	if s.Board.Occupied(c) {
		t.Error("board cell must be empty after recall")
	}
}

func TestLockedTilesAreImmutable(t *testing.T) {
	s, g := newHydrated(t)
	c := game.Coord{Row: 7, Col: 7}
	g.Board[c.Key()] = game.Tile{ID: "x", Letter: "X", Value: 8}
	s.Hydrate(g)

	if s.Recall(c) {
		t.Error("Recall of locked tile must fail")
	}
	if s.Relocate(c, game.Coord{Row: 0, Col: 0}) {
		t.Error("Relocate of locked tile must fail")
	}
	if s.Board.Occupied(game.Coord{Row: 0, Col: 0}) {
		t.Error("locked tile must not have moved")
	}
	rackLen := len(s.Rack)
	s.Reset()
	if !s.Board.Occupied(c) || len(s.Rack) != rackLen {
		t.Error("Reset must not disturb locked tiles")
	}
}

func TestRelocate(t *testing.T) {
	s, _ := newHydrated(t)
	tileID := s.Rack[0].ID
	from := game.Coord{Row: 7, Col: 7}
	to := game.Coord{Row: 7, Col: 8}

	if !s.Place(tileID, from) {
		t.Fatal("Place failed")
	}
	if !s.Relocate(from, to) {
		t.Fatal("Relocate failed")
	}
	if s.Board.Occupied(from) {
		t.Error("source cell still occupied")
	}
	if tile, ok := s.Board.At(to); !ok || tile.ID != tileID {
		t.Error("tile did not arrive at target")
	}
	st := s.Staged()
	if st[from] || !st[to] {
		t.Errorf("staged set did not move with the tile: %v", st)
	}
}

func TestReset(t *testing.T) {
	s, _ := newHydrated(t)
	s.Place(s.Rack[0].ID, game.Coord{Row: 7, Col: 7})
	s.Place(s.Rack[0].ID, game.Coord{Row: 7, Col: 8})
	s.Select(s.Rack[0].ID)

	s.Reset()
	if s.HasStaged() {
		t.Error("staged set must be empty after reset")
	}
	if len(s.Rack) != game.RackSize {
		t.Errorf("rack = %d tiles after reset, want %d", len(s.Rack), game.RackSize)
	}
	if s.Selected() != "" {
		t.Error("selection must be cleared by reset")
	}

	// Idempotent.
	s.Reset()
	if len(s.Rack) != game.RackSize {
		t.Error("second reset changed the rack")
	}
}

func TestSelectThenPlace(t *testing.T) {
	s, _ := newHydrated(t)
	c := game.Coord{Row: 7, Col: 7}

	if s.PlaceSelected(c) {
		t.Error("PlaceSelected without a selection must fail")
	}
	if s.Select("nope") {
		t.Error("Select of unknown tile must fail")
	}
	if !s.Select(s.Rack[2].ID) {
		t.Fatal("Select failed")
	}
	if !s.PlaceSelected(c) {
		t.Fatal("PlaceSelected failed")
	}
	if s.Selected() != "" {
		t.Error("selection must clear after placing")
	}
	if !s.Staged()[c] {
		t.Error("cell must be staged")
	}
}

func TestScoreStaged(t *testing.T) {
	s, _ := newHydrated(t)
	tile := s.Rack[0]
	s.Place(tile.ID, game.Coord{Row: 7, Col: 7})

	res, err := s.ScoreStaged(game.Layout())
	if err != nil {
		t.Fatalf("ScoreStaged() error = %v", err)
	}
	if res.Word != tile.Letter {
		t.Errorf("word = %q, want %q", res.Word, tile.Letter)
	}
	if res.Score != tile.Value*2 { // center double word
		t.Errorf("score = %d, want %d", res.Score, tile.Value*2)
	}
}
