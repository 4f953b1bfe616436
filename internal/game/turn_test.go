package game

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("alice", "bob@example.com", rand.New(rand.NewSource(42)), testNow)
	return g
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	if g.Status != StatusWaiting {
		t.Errorf("status = %q, want %q", g.Status, StatusWaiting)
	}
	if g.ActiveUID != "alice" {
		t.Errorf("active = %q, want creator", g.ActiveUID)
	}
	if len(g.Racks["alice"]) != RackSize {
		t.Errorf("creator rack = %d tiles, want %d", len(g.Racks["alice"]), RackSize)
	}
	if len(g.Bag) != BagSize()-RackSize {
		t.Errorf("bag = %d tiles, want %d", len(g.Bag), BagSize()-RackSize)
	}
	if s, ok := g.Scores["alice"]; !ok || s != 0 {
		t.Errorf("creator score = %d, %v; want 0, true", s, ok)
	}
	if g.InvitedEmail != "bob@example.com" {
		t.Errorf("invitedEmail = %q", g.InvitedEmail)
	}
}

func TestJoin(t *testing.T) {
	g := newTestGame(t)

	if _, err := Join(g, "alice", testNow); !errors.Is(err, ErrOwnGame) {
		t.Errorf("join own game: err = %v, want ErrOwnGame", err)
	}

	patch, err := Join(g, "bob", testNow)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	patch.Apply(g)

	if g.Status != StatusActive {
		t.Errorf("status = %q, want %q", g.Status, StatusActive)
	}
	if g.Player2UID != "bob" {
		t.Errorf("player2 = %q, want bob", g.Player2UID)
	}
	if len(g.Racks["bob"]) != RackSize {
		t.Errorf("joiner rack = %d tiles, want %d", len(g.Racks["bob"]), RackSize)
	}
	if len(g.Bag) != BagSize()-2*RackSize {
		t.Errorf("bag = %d tiles, want %d", len(g.Bag), BagSize()-2*RackSize)
	}
	if g.ActiveUID != "alice" {
		t.Errorf("active = %q, join must not steal the turn", g.ActiveUID)
	}

	if _, err := Join(g, "carol", testNow); !errors.Is(err, ErrNotJoinable) {
		t.Errorf("join active game: err = %v, want ErrNotJoinable", err)
	}
}

// commitFirstMove plays the first rack tile at the center and applies the
// patch, returning the scored result.
func commitFirstMove(t *testing.T, g *Game, actor string) MoveResult {
	t.Helper()
	rack := g.Racks[actor]
	placed := rack[0]
	rest := append([]Tile(nil), rack[1:]...)

	board := BoardFromSparse(g.Board)
	board[Center] = placed
	res, err := ScoreMove(map[Coord]bool{Center: true}, board, Layout(), true)
	if err != nil {
		t.Fatalf("ScoreMove() error = %v", err)
	}
	patch, err := Commit(g, board, rest, res, actor, testNow)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	patch.Apply(g)
	return res
}

func TestCommit(t *testing.T) {
	g := newTestGame(t)
	patch, err := Join(g, "bob", testNow)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	patch.Apply(g)

	if _, err := Commit(g, Board{}, nil, MoveResult{}, "bob", testNow); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("commit out of turn: err = %v, want ErrNotYourTurn", err)
	}
	if _, err := Commit(g, Board{}, nil, MoveResult{}, "mallory", testNow); !errors.Is(err, ErrNotSeated) {
		t.Errorf("commit by stranger: err = %v, want ErrNotSeated", err)
	}

	bagBefore := len(g.Bag)
	res := commitFirstMove(t, g, "alice")

	if g.Scores["alice"] != res.Score {
		t.Errorf("score = %d, want %d", g.Scores["alice"], res.Score)
	}
	if g.ActiveUID != "bob" {
		t.Errorf("active = %q, commit must flip the turn", g.ActiveUID)
	}
	if len(g.Racks["alice"]) != RackSize {
		t.Errorf("rack = %d tiles, want topped up to %d", len(g.Racks["alice"]), RackSize)
	}
	if len(g.Bag) != bagBefore-1 {
		t.Errorf("bag = %d, want %d (one replacement drawn)", len(g.Bag), bagBefore-1)
	}
	if len(g.Board) != 1 {
		t.Errorf("board = %d cells, want 1", len(g.Board))
	}
	lm := g.LastMove
	if lm == nil {
		t.Fatal("LastMove not recorded")
	}
	if lm.Word != res.Word || lm.Score != res.Score || lm.PlayerUID != "alice" {
		t.Errorf("LastMove = %+v", lm)
	}
	if len(lm.PrevBoard) != 0 || lm.PrevActiveUID != "alice" || len(lm.PrevBag) != bagBefore {
		t.Errorf("pre-move snapshot wrong: board=%d active=%q bag=%d", len(lm.PrevBoard), lm.PrevActiveUID, len(lm.PrevBag))
	}
}

func TestCommitSinglePlayerKeepsTurn(t *testing.T) {
	g := newTestGame(t)
	commitFirstMove(t, g, "alice")
	if g.ActiveUID != "alice" {
		t.Errorf("active = %q; with one seat filled the turn stays", g.ActiveUID)
	}
}

func TestPass(t *testing.T) {
	g := newTestGame(t)
	patch, err := Join(g, "bob", testNow)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	patch.Apply(g)

	boardBefore := len(g.Board)
	bagBefore := len(g.Bag)

	patch, err = Pass(g, "alice", testNow)
	if err != nil {
		t.Fatalf("Pass() error = %v", err)
	}
	patch.Apply(g)

	if g.ActiveUID != "bob" {
		t.Errorf("active = %q, pass must flip the turn", g.ActiveUID)
	}
	if len(g.Board) != boardBefore || len(g.Bag) != bagBefore {
		t.Error("pass must not touch board or bag")
	}
	if g.LastMove == nil || g.LastMove.Word != WordPass || g.LastMove.Score != 0 {
		t.Errorf("LastMove = %+v, want PASS/0", g.LastMove)
	}

	if _, err := Pass(g, "alice", testNow); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("pass out of turn: err = %v, want ErrNotYourTurn", err)
	}
}

func TestUndo(t *testing.T) {
	g := newTestGame(t)
	patch, err := Join(g, "bob", testNow)
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	patch.Apply(g)

	if _, err := Undo(g, "alice", false, testNow); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("undo with no history: err = %v, want ErrNothingToUndo", err)
	}

	prevRack := append([]Tile(nil), g.Racks["alice"]...)
	prevBag := len(g.Bag)
	commitFirstMove(t, g, "alice")

	if _, err := Undo(g, "bob", false, testNow); !errors.Is(err, ErrNotLastActor) {
		t.Errorf("undo by opponent: err = %v, want ErrNotLastActor", err)
	}
	if _, err := Undo(g, "alice", true, testNow); !errors.Is(err, ErrStagedPending) {
		t.Errorf("undo with staged tiles: err = %v, want ErrStagedPending", err)
	}

	patch, err = Undo(g, "alice", false, testNow)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	patch.Apply(g)

	if len(g.Board) != 0 {
		t.Errorf("board = %d cells after undo, want 0", len(g.Board))
	}
	if g.Scores["alice"] != 0 {
		t.Errorf("score = %d after undo, want 0", g.Scores["alice"])
	}
	if g.ActiveUID != "alice" {
		t.Errorf("active = %q after undo, want alice", g.ActiveUID)
	}
	if len(g.Bag) != prevBag {
		t.Errorf("bag = %d after undo, want %d", len(g.Bag), prevBag)
	}
	if len(g.Racks["alice"]) != len(prevRack) {
		t.Errorf("rack = %d after undo, want %d", len(g.Racks["alice"]), len(prevRack))
	}
	if g.LastMove == nil || g.LastMove.Word != WordUndo {
		t.Fatalf("LastMove = %+v, want UNDO record", g.LastMove)
	}

	// An undo cannot itself be undone.
	if _, err := Undo(g, "alice", false, testNow); !errors.Is(err, ErrUndoOfUndo) {
		t.Errorf("undo of undo: err = %v, want ErrUndoOfUndo", err)
	}
}
