// internal/game/score.go
//
// Move validation and scoring.
// Given the staged cells of an uncommitted move and the current board
// (locked tiles plus staged tiles), this infers the played word's axis and
// extent, validates its shape, and computes the multiplier-aware score.
//
// Validation rules:
//   - The opening move (no locked tile anywhere) must cover the center.
//   - All staged cells share one row or one column.
//   - The word extent, extended through occupied neighbors on both ends,
//     contains no empty cell.
//
// Scoring rules:
//   - Letter multipliers apply only to cells staged this move.
//   - Word multipliers from staged cells multiply together (two DW squares
//     in one word quadruple it).
//   - Reused locked tiles contribute base value only, whatever square they
//     sit on.
//
// There is no dictionary: any contiguous, gapless, single-axis run is a
// word. That matches the game as shipped.

package game

import (
	"errors"
	"strings"
)

// Validation outcomes for a staged move.
var (
	// ErrNoTiles means nothing is staged. Callers treat this as "there is
	// no move to commit", not as a failed move.
	ErrNoTiles = errors.New("no tiles played")

	// ErrFirstMoveCenter rejects an opening move that skips the center.
	ErrFirstMoveCenter = errors.New("first move must use the center square")

	// ErrNotInLine rejects staged tiles spanning both axes.
	ErrNotInLine = errors.New("place tiles in a single row or column")

	// ErrWordGap rejects a run with an empty cell inside its extent.
	ErrWordGap = errors.New("there is a gap in the word")
)

// MoveResult is a validated, scored move.
type MoveResult struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// ScoreMove validates the staged cells against the board and computes the
// move's word and score. board must contain both locked and staged tiles;
// opening is true when no locked tile exists anywhere on the board. Pure:
// no inputs are mutated.
func ScoreMove(staged map[Coord]bool, board Board, grid MultiplierGrid, opening bool) (MoveResult, error) {
	if len(staged) == 0 {
		return MoveResult{}, ErrNoTiles
	}
	if opening && !staged[Center] {
		return MoveResult{}, ErrFirstMoveCenter
	}

	first := true
	var ref Coord
	sameRow, sameCol := true, true
	minRow, maxRow, minCol, maxCol := 0, 0, 0, 0
	for c := range staged {
		if first {
			ref, first = c, false
			minRow, maxRow, minCol, maxCol = c.Row, c.Row, c.Col, c.Col
			continue
		}
		if c.Row != ref.Row {
			sameRow = false
		}
		if c.Col != ref.Col {
			sameCol = false
		}
		minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
	}
	if !sameRow && !sameCol {
		return MoveResult{}, ErrNotInLine
	}

	// A single tile satisfies both axes, so the axis is chosen by where its
	// occupied neighbors are: a tile under an existing word must walk that
	// word vertically. With no occupied neighbor on either axis the choice
	// is immaterial.
	horizontal := sameRow
	if len(staged) == 1 {
		beside := board.Occupied(Coord{ref.Row, ref.Col - 1}) ||
			board.Occupied(Coord{ref.Row, ref.Col + 1})
		stacked := board.Occupied(Coord{ref.Row - 1, ref.Col}) ||
			board.Occupied(Coord{ref.Row + 1, ref.Col})
		horizontal = beside || !stacked
	}

	// Extend the extent outward through every occupied neighbor, so a move
	// that lengthens an existing word scores the whole word.
	var lo, hi int
	if horizontal {
		lo, hi = minCol, maxCol
		for lo > 0 && board.Occupied(Coord{ref.Row, lo - 1}) {
			lo--
		}
		for hi < BoardSize-1 && board.Occupied(Coord{ref.Row, hi + 1}) {
			hi++
		}
	} else {
		lo, hi = minRow, maxRow
		for lo > 0 && board.Occupied(Coord{lo - 1, ref.Col}) {
			lo--
		}
		for hi < BoardSize-1 && board.Occupied(Coord{hi + 1, ref.Col}) {
			hi++
		}
	}

	var word strings.Builder
	letterSum := 0
	wordMult := 1
	touchesExisting := false
	for i := lo; i <= hi; i++ {
		c := Coord{ref.Row, i}
		if !horizontal {
			c = Coord{i, ref.Col}
		}
		t, ok := board.At(c)
		if !ok {
			return MoveResult{}, ErrWordGap
		}
		v := t.Value
		if staged[c] {
			m := grid[c.Row][c.Col]
			v *= m.Letter()
			wordMult *= m.Word()
		} else {
			touchesExisting = true
		}
		letterSum += v
		word.WriteString(t.Letter)
	}

	// Past the opening move every word must build on a committed tile; a
	// staged run floating apart from the word it claims to extend is a gap
	// between that word and the new tiles.
	if !opening && !touchesExisting {
		return MoveResult{}, ErrWordGap
	}

	return MoveResult{Word: word.String(), Score: letterSum * wordMult}, nil
}
