// internal/game/board.go
//
// Board representation and the sparse persisted form.
// Responsibilities:
//   - Coord: a board position in [0,14]×[0,14].
//   - Board: in-memory occupancy, a map keyed by Coord.
//   - Sparse codec: the store persists the board as a flat map with
//     "row{R}_col{C}" string keys; that encoding lives here and nowhere
//     else in the model.
//
// Malformed or out-of-range keys in persisted data are skipped, not
// treated as errors; a damaged cell must not make a game unloadable.

package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord addresses one board cell.
type Coord struct {
	Row int
	Col int
}

// InBounds reports whether the coordinate lies on the board.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Key renders the coordinate in the persisted "row{R}_col{C}" form.
func (c Coord) Key() string {
	return fmt.Sprintf("row%d_col%d", c.Row, c.Col)
}

// ParseKey parses a persisted coordinate key. The second return is false
// for keys that do not match the pattern or fall outside the board.
func ParseKey(key string) (Coord, bool) {
	rest, ok := strings.CutPrefix(key, "row")
	if !ok {
		return Coord{}, false
	}
	rowStr, colStr, ok := strings.Cut(rest, "_col")
	if !ok {
		return Coord{}, false
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Coord{}, false
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Coord{}, false
	}
	c := Coord{Row: row, Col: col}
	if !c.InBounds() {
		return Coord{}, false
	}
	return c, true
}

// Board is the in-memory occupancy of the grid. Absent keys are empty
// cells. Tiles are stored by value; a Board can be copied freely.
type Board map[Coord]Tile

// BoardFromSparse hydrates a Board from the persisted flat map, silently
// ignoring entries whose keys do not parse or are out of range.
func BoardFromSparse(m map[string]Tile) Board {
	b := make(Board, len(m))
	for key, t := range m {
		if c, ok := ParseKey(key); ok {
			b[c] = t
		}
	}
	return b
}

// Sparse emits the persisted flat-map form, one entry per occupied cell.
func (b Board) Sparse() map[string]Tile {
	m := make(map[string]Tile, len(b))
	for c, t := range b {
		m[c.Key()] = t
	}
	return m
}

// At returns the tile at c, if any.
func (b Board) At(c Coord) (Tile, bool) {
	t, ok := b[c]
	return t, ok
}

// Occupied reports whether c holds a tile.
func (b Board) Occupied(c Coord) bool {
	_, ok := b[c]
	return ok
}

// Clone returns an independent copy.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for c, t := range b {
		out[c] = t
	}
	return out
}
