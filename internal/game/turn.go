// internal/game/turn.go
//
// Turn protocol: how a validated outcome becomes the next persisted game
// state. Every operation here is pure: it inspects the current snapshot
// and returns a Patch of the top-level fields that change. The caller
// writes the patch through the store; nothing is considered committed
// until that write succeeds.
//
// Precondition failures are sentinel errors returned before any state is
// derived, so a rejected operation never produces a partial patch.

package game

import (
	"errors"
	"math/rand"
	"time"
)

// Precondition failures for turn operations.
var (
	ErrNotSeated     = errors.New("not a player in this game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotJoinable   = errors.New("game is not waiting for a second player")
	ErrOwnGame       = errors.New("cannot join your own game")
	ErrSeatTaken     = errors.New("second seat is already taken")
	ErrNotLastActor  = errors.New("only the player who made the last move can undo it")
	ErrNothingToUndo = errors.New("no move to undo")
	ErrUndoOfUndo    = errors.New("the last action was already an undo")
	ErrStagedPending = errors.New("clear staged tiles before undoing")
	ErrNotCreator    = errors.New("only the game creator may do this")
)

// NewGame creates a fresh waiting game: bag built and shuffled, seven tiles
// dealt to the creator, creator active. invitedEmail may be empty.
func NewGame(creatorUID, invitedEmail string, rng *rand.Rand, now time.Time) *Game {
	bag := NewBag(rng)
	rack, bag := Draw(bag, RackSize)
	return &Game{
		Status:       StatusWaiting,
		Player1UID:   creatorUID,
		ActiveUID:    creatorUID,
		Bag:          bag,
		Racks:        map[string][]Tile{creatorUID: rack},
		Board:        map[string]Tile{},
		Scores:       map[string]int{creatorUID: 0},
		InvitedEmail: invitedEmail,
		UpdatedAt:    now,
	}
}

// Join seats uid as the second player: deals the next seven tiles, opens
// their score at zero, and activates the game. The creator keeps the first
// turn.
func Join(g *Game, uid string, now time.Time) (Patch, error) {
	if g.Status != StatusWaiting {
		return Patch{}, ErrNotJoinable
	}
	if uid == g.Player1UID {
		return Patch{}, ErrOwnGame
	}
	if g.Player2UID != "" {
		return Patch{}, ErrSeatTaken
	}

	rack, bag := Draw(g.Bag, RackSize)
	racks := cloneRacks(g.Racks)
	racks[uid] = rack
	scores := cloneScores(g.Scores)
	scores[uid] = 0

	status := StatusActive
	return Patch{
		Status:     &status,
		Player2UID: &uid,
		Bag:        &bag,
		Racks:      &racks,
		Scores:     &scores,
		UpdatedAt:  &now,
	}, nil
}

// Commit applies a scored move by actorUID. board is the local dense board
// including the staged tiles; rack is the actor's rack after the staged
// tiles left it. The rack is topped back up to seven from the front of the
// bag (fewer if the bag runs short), the score is credited, the turn flips
// to the opponent when one is seated, and a LastMove with the full pre-move
// snapshot is recorded.
func Commit(g *Game, board Board, rack []Tile, res MoveResult, actorUID string, now time.Time) (Patch, error) {
	if !g.Seated(actorUID) {
		return Patch{}, ErrNotSeated
	}
	if g.ActiveUID != actorUID {
		return Patch{}, ErrNotYourTurn
	}

	lm := &LastMove{
		Word:          res.Word,
		Score:         res.Score,
		PlayerUID:     actorUID,
		PlayedAt:      now,
		PrevBoard:     cloneBoardMap(g.Board),
		PrevBag:       append([]Tile(nil), g.Bag...),
		PrevRacks:     cloneRacks(g.Racks),
		PrevScores:    cloneScores(g.Scores),
		PrevActiveUID: g.ActiveUID,
	}

	rack = append([]Tile(nil), rack...)
	bag := append([]Tile(nil), g.Bag...)
	if need := RackSize - len(rack); need > 0 {
		var drawn []Tile
		drawn, bag = Draw(bag, need)
		rack = append(rack, drawn...)
	}

	racks := cloneRacks(g.Racks)
	racks[actorUID] = rack
	scores := cloneScores(g.Scores)
	scores[actorUID] += res.Score

	active := g.ActiveUID
	if opp := g.Opponent(actorUID); opp != "" {
		active = opp
	}

	sparse := board.Sparse()
	return Patch{
		ActiveUID: &active,
		Bag:       &bag,
		Racks:     &racks,
		Board:     &sparse,
		Scores:    &scores,
		LastMove:  &lm,
		UpdatedAt: &now,
	}, nil
}

// Pass flips the turn without touching board, racks, or scores, recording
// a PASS LastMove whose pre-move snapshot equals the unchanged state.
func Pass(g *Game, actorUID string, now time.Time) (Patch, error) {
	if !g.Seated(actorUID) {
		return Patch{}, ErrNotSeated
	}
	if g.ActiveUID != actorUID {
		return Patch{}, ErrNotYourTurn
	}

	lm := &LastMove{
		Word:          WordPass,
		PlayerUID:     actorUID,
		PlayedAt:      now,
		PrevBoard:     cloneBoardMap(g.Board),
		PrevBag:       append([]Tile(nil), g.Bag...),
		PrevRacks:     cloneRacks(g.Racks),
		PrevScores:    cloneScores(g.Scores),
		PrevActiveUID: g.ActiveUID,
	}

	active := g.ActiveUID
	if opp := g.Opponent(actorUID); opp != "" {
		active = opp
	}

	return Patch{
		ActiveUID: &active,
		LastMove:  &lm,
		UpdatedAt: &now,
	}, nil
}

// Undo reverses the most recent action. Only the recorded actor may undo,
// only while they have nothing staged, and an undo itself cannot be undone.
// The pre-move snapshot is restored verbatim and a chaining UNDO record is
// written; since re-undo is blocked, the chain never advances further.
func Undo(g *Game, actorUID string, hasStaged bool, now time.Time) (Patch, error) {
	lm := g.LastMove
	if lm == nil {
		return Patch{}, ErrNothingToUndo
	}
	if lm.PlayerUID != actorUID {
		return Patch{}, ErrNotLastActor
	}
	if lm.Word == WordUndo {
		return Patch{}, ErrUndoOfUndo
	}
	if hasStaged {
		return Patch{}, ErrStagedPending
	}

	board := cloneBoardMap(lm.PrevBoard)
	bag := append([]Tile(nil), lm.PrevBag...)
	racks := cloneRacks(lm.PrevRacks)
	scores := cloneScores(lm.PrevScores)
	active := lm.PrevActiveUID

	undo := &LastMove{
		Word:          WordUndo,
		PlayerUID:     actorUID,
		PlayedAt:      now,
		PrevBoard:     cloneBoardMap(lm.PrevBoard),
		PrevBag:       append([]Tile(nil), lm.PrevBag...),
		PrevRacks:     cloneRacks(lm.PrevRacks),
		PrevScores:    cloneScores(lm.PrevScores),
		PrevActiveUID: lm.PrevActiveUID,
	}

	return Patch{
		ActiveUID: &active,
		Bag:       &bag,
		Racks:     &racks,
		Board:     &board,
		Scores:    &scores,
		LastMove:  &undo,
		UpdatedAt: &now,
	}, nil
}
