// internal/game/layout.go
//
// Static bonus-square layout for the 15×15 board.
// The canonical layout is symmetric under the four board reflections, so it
// is defined as short per-kind coordinate lists for one quadrant (including
// the shared center row/column) and expanded by reflecting each coordinate
// to (r,c), (r,14−c), (14−r,c), (14−r,14−c).
//
// Multipliers apply only to squares a move newly covers; the scorer decides
// that, this package just answers "what bonus sits on this square".

package game

// BoardSize is the side length of the board.
const BoardSize = 15

// Multiplier is the bonus kind of a board square.
type Multiplier uint8

const (
	MultNone Multiplier = iota
	MultDoubleLetter
	MultTripleLetter
	MultDoubleWord
	MultTripleWord
)

// Letter returns the factor applied to a newly placed tile's value (1 for
// non-letter bonuses).
func (m Multiplier) Letter() int {
	switch m {
	case MultDoubleLetter:
		return 2
	case MultTripleLetter:
		return 3
	}
	return 1
}

// Word returns the factor this square contributes to the word-multiplier
// product (1 for non-word bonuses).
func (m Multiplier) Word() int {
	switch m {
	case MultDoubleWord:
		return 2
	case MultTripleWord:
		return 3
	}
	return 1
}

func (m Multiplier) String() string {
	switch m {
	case MultDoubleLetter:
		return "DL"
	case MultTripleLetter:
		return "TL"
	case MultDoubleWord:
		return "DW"
	case MultTripleWord:
		return "TW"
	}
	return "--"
}

// MultiplierGrid is the full 15×15 bonus layout.
type MultiplierGrid [BoardSize][BoardSize]Multiplier

// Center is the starting square.
var Center = Coord{Row: 7, Col: 7}

// Quadrant definitions (rows/cols 0..7). Reflection fills in the rest.
var (
	tripleWordQuadrant   = []Coord{{0, 0}, {0, 7}, {7, 0}}
	doubleWordQuadrant   = []Coord{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {7, 7}}
	tripleLetterQuadrant = []Coord{{1, 5}, {5, 1}, {5, 5}}
	doubleLetterQuadrant = []Coord{{0, 3}, {3, 0}, {2, 6}, {6, 2}, {6, 6}, {3, 7}, {7, 3}}
)

var layout = buildLayout()

// Layout returns the bonus layout. The grid is built once; repeated calls
// return identical copies.
func Layout() MultiplierGrid {
	return layout
}

func buildLayout() MultiplierGrid {
	var g MultiplierGrid
	set := func(coords []Coord, m Multiplier) {
		for _, c := range coords {
			r2, c2 := BoardSize-1-c.Row, BoardSize-1-c.Col
			g[c.Row][c.Col] = m
			g[c.Row][c2] = m
			g[r2][c.Col] = m
			g[r2][c2] = m
		}
	}
	set(tripleWordQuadrant, MultTripleWord)
	set(doubleWordQuadrant, MultDoubleWord)
	set(tripleLetterQuadrant, MultTripleLetter)
	set(doubleLetterQuadrant, MultDoubleLetter)
	return g
}
