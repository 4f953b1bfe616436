// internal/game/tile.go
//
// Tiles and the tile bag.
// Responsibilities:
//   - Tile: a single letter piece with a stable identity.
//   - Distribution: the fixed 98-tile English letter set (no blanks).
//   - NewBag: build and uniformly shuffle a fresh bag.
//   - Draw: deal tiles from the front of the bag.
//
// Notes:
//   - Duplicate letters are distinguished by Tile.ID (uuid), so racks and
//     staged sets can track individual pieces.
//   - The shuffle is a textbook Fisher–Yates; rand.Intn has no modulo bias,
//     so every permutation is equally likely.

package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// RackSize is the number of tiles a rack is topped up to.
const RackSize = 7

// Tile is a single letter piece. Identity is carried by ID so that
// otherwise-identical letters remain distinguishable.
type Tile struct {
	ID     string `json:"id"`
	Letter string `json:"letter"` // single uppercase A–Z
	Value  int    `json:"value"`  // base point worth
}

// LetterInfo describes one letter's entry in the distribution table.
type LetterInfo struct {
	Count int
	Value int
}

// Distribution is the standard English letter set: 98 tiles.
// Blank tiles are not part of this game.
var Distribution = map[string]LetterInfo{
	"A": {9, 1}, "B": {2, 3}, "C": {2, 3}, "D": {4, 2}, "E": {12, 1},
	"F": {2, 4}, "G": {3, 2}, "H": {2, 4}, "I": {9, 1}, "J": {1, 8},
	"K": {1, 5}, "L": {4, 1}, "M": {2, 3}, "N": {6, 1}, "O": {8, 1},
	"P": {2, 3}, "Q": {1, 10}, "R": {6, 1}, "S": {4, 1}, "T": {6, 1},
	"U": {4, 2}, "V": {2, 4}, "W": {2, 4}, "X": {1, 8}, "Y": {2, 4},
	"Z": {1, 10},
}

// BagSize returns the total tile count of the distribution (98 for the
// standard set).
func BagSize() int {
	n := 0
	for _, info := range Distribution {
		n += info.Count
	}
	return n
}

// NewBag builds a full bag from the distribution and applies a uniform
// Fisher–Yates shuffle. Each tile gets a fresh uuid. If rng is nil the
// shared math/rand source is used (goroutine-safe); tests pass a seeded
// *rand.Rand for determinism.
func NewBag(rng *rand.Rand) []Tile {
	bag := make([]Tile, 0, BagSize())
	for letter, info := range Distribution {
		for i := 0; i < info.Count; i++ {
			bag = append(bag, Tile{
				ID:     uuid.NewString(),
				Letter: letter,
				Value:  info.Value,
			})
		}
	}

	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}
	for i := len(bag) - 1; i >= 1; i-- {
		j := intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag
}

// Draw deals up to n tiles from the front of the bag, returning the drawn
// tiles and the remaining bag. Drawing from a short bag yields fewer tiles;
// drawing from an empty bag yields none.
func Draw(bag []Tile, n int) (drawn, rest []Tile) {
	if n > len(bag) {
		n = len(bag)
	}
	if n <= 0 {
		return nil, bag
	}
	drawn = append([]Tile(nil), bag[:n]...)
	rest = append([]Tile(nil), bag[n:]...)
	return drawn, rest
}
