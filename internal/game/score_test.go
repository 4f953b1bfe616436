package game

import (
	"errors"
	"testing"
)

// staged marks cells as this move's placements.
func staged(coords ...Coord) map[Coord]bool {
	m := make(map[Coord]bool, len(coords))
	for _, c := range coords {
		m[c] = true
	}
	return m
}

func tile(letter string, value int) Tile {
	return Tile{ID: letter + "-test", Letter: letter, Value: value}
}

func TestScoreMoveValidation(t *testing.T) {
	grid := Layout()

	tests := []struct {
		name    string
		staged  map[Coord]bool
		board   Board
		opening bool
		wantErr error
	}{
		{
			name:    "nothing staged",
			staged:  staged(),
			board:   Board{},
			opening: true,
			wantErr: ErrNoTiles,
		},
		{
			name:    "opening move off center",
			staged:  staged(Coord{7, 8}),
			board:   Board{{7, 8}: tile("A", 1)},
			opening: true,
			wantErr: ErrFirstMoveCenter,
		},
		{
			name:   "two axes",
			staged: staged(Coord{7, 7}, Coord{8, 8}),
			board: Board{
				{7, 7}: tile("A", 1),
				{8, 8}: tile("B", 3),
			},
			opening: true,
			wantErr: ErrNotInLine,
		},
		{
			name:   "gap inside staged run",
			staged: staged(Coord{7, 7}, Coord{7, 9}),
			board: Board{
				{7, 7}: tile("A", 1),
				{7, 9}: tile("B", 3),
			},
			opening: true,
			wantErr: ErrWordGap,
		},
		{
			name:   "disconnected from existing word",
			staged: staged(Coord{7, 9}),
			board: Board{
				{7, 5}: tile("C", 3),
				{7, 7}: tile("T", 1),
				{7, 9}: tile("S", 1),
			},
			opening: false,
			wantErr: ErrWordGap,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ScoreMove(tc.staged, tc.board, grid, tc.opening)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ScoreMove() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestScoreMoveScoring(t *testing.T) {
	grid := Layout()

	tests := []struct {
		name      string
		staged    map[Coord]bool
		board     Board
		opening   bool
		wantWord  string
		wantScore int
	}{
		{
			// Single C at the center: 3 doubled by the center DW.
			name:      "opening single tile on center",
			staged:    staged(Coord{7, 7}),
			board:     Board{{7, 7}: tile("C", 3)},
			opening:   true,
			wantWord:  "C",
			wantScore: 6,
		},
		{
			// Staged tile closes the gap between two locked tiles; (7,6)
			// carries no bonus, so plain letter values.
			name:   "fill gap between locked tiles",
			staged: staged(Coord{7, 6}),
			board: Board{
				{7, 5}: tile("C", 3),
				{7, 6}: tile("A", 1),
				{7, 7}: tile("T", 1),
			},
			opening:   false,
			wantWord:  "CAT",
			wantScore: 5,
		},
		{
			// B on the (0,3) double-letter contributes 6; the locked A
			// contributes its base value.
			name:   "double letter on fresh tile",
			staged: staged(Coord{0, 3}),
			board: Board{
				{0, 3}: tile("B", 3),
				{0, 4}: tile("A", 1),
			},
			opening:   false,
			wantWord:  "BA",
			wantScore: 7,
		},
		{
			// The locked C sits on the center DW; reusing it neither
			// multiplies its value nor the word.
			name:   "locked tile on word bonus scores base only",
			staged: staged(Coord{7, 8}),
			board: Board{
				{7, 7}: tile("C", 3),
				{7, 8}: tile("A", 1),
			},
			opening:   false,
			wantWord:  "CA",
			wantScore: 4,
		},
		{
			// Word crosses both row-4 DW squares: letter sum 9, ×2×2.
			name: "two double words multiply",
			staged: staged(
				Coord{4, 4}, Coord{4, 5}, Coord{4, 6},
				Coord{4, 8}, Coord{4, 9}, Coord{4, 10},
			),
			board: Board{
				{4, 4}:  tile("A", 1),
				{4, 5}:  tile("N", 1),
				{4, 6}:  tile("I", 1),
				{4, 7}:  tile("M", 3), // locked
				{4, 8}:  tile("A", 1),
				{4, 9}:  tile("T", 1),
				{4, 10}: tile("E", 1),
			},
			opening:   false,
			wantWord:  "ANIMATE",
			wantScore: 36,
		},
		{
			// One tile under an existing word must walk that word's axis,
			// not its own trivial horizontal extent.
			name:   "single tile extends word below",
			staged: staged(Coord{8, 7}),
			board: Board{
				{7, 7}: tile("C", 3),
				{8, 7}: tile("A", 1),
			},
			opening:   false,
			wantWord:  "CA",
			wantScore: 4,
		},
		{
			name:   "single tile extends word above",
			staged: staged(Coord{6, 7}),
			board: Board{
				{6, 7}: tile("A", 1),
				{7, 7}: tile("C", 3),
			},
			opening:   false,
			wantWord:  "AC",
			wantScore: 4,
		},
		{
			name:   "single tile extends word left",
			staged: staged(Coord{7, 6}),
			board: Board{
				{7, 6}: tile("A", 1),
				{7, 7}: tile("C", 3),
			},
			opening:   false,
			wantWord:  "AC",
			wantScore: 4,
		},
		{
			// Vertical extension of a locked tile.
			name:   "vertical word",
			staged: staged(Coord{8, 7}, Coord{9, 7}),
			board: Board{
				{7, 7}: tile("C", 3),
				{8, 7}: tile("A", 1),
				{9, 7}: tile("B", 3),
			},
			opening:   false,
			wantWord:  "CAB",
			wantScore: 7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScoreMove(tc.staged, tc.board, grid, tc.opening)
			if err != nil {
				t.Fatalf("ScoreMove() error = %v", err)
			}
			if got.Word != tc.wantWord || got.Score != tc.wantScore {
				t.Errorf("ScoreMove() = %q/%d, want %q/%d", got.Word, got.Score, tc.wantWord, tc.wantScore)
			}
		})
	}
}

func TestScoreMoveDeterministic(t *testing.T) {
	grid := Layout()
	b := Board{
		{7, 7}: tile("C", 3),
		{7, 8}: tile("A", 1),
	}
	s := staged(Coord{7, 8})
	first, err := ScoreMove(s, b, grid, false)
	if err != nil {
		t.Fatalf("ScoreMove() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ScoreMove(s, b, grid, false)
		if err != nil || again != first {
			t.Fatalf("run %d: ScoreMove() = %+v, %v; want %+v", i, again, err, first)
		}
	}
}
