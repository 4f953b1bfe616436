// internal/game/game.go
//
// The persisted Game aggregate and its partial-update form.
// A Game is the full durable record of one two-player match: seating,
// bag, racks, sparse board, scores, active player, and the single
// most recent move (kept for one-level undo).
//
// The store merges Patch values field-by-field into the persisted record
// (last write wins); the JSON tags here define the persisted shape.

package game

import "time"

// Status is the lifecycle state of a game.
type Status string

const (
	StatusWaiting  Status = "waiting"  // creator seated, second slot open
	StatusActive   Status = "active"   // both players seated
	StatusFinished Status = "finished" // play concluded
)

// Sentinel words recorded in LastMove for non-scoring actions.
const (
	WordPass = "PASS"
	WordUndo = "UNDO"
)

// Game is the aggregate persisted entity.
type Game struct {
	Status       Status            `json:"status"`
	Player1UID   string            `json:"player1Uid"`
	Player2UID   string            `json:"player2Uid,omitempty"`
	ActiveUID    string            `json:"activePlayerUid"`
	Bag          []Tile            `json:"bag"`
	Racks        map[string][]Tile `json:"racks"`
	Board        map[string]Tile   `json:"board"` // sparse "row{R}_col{C}" form
	Scores       map[string]int    `json:"scores"`
	InvitedEmail string            `json:"invitedEmail,omitempty"`
	LastMove     *LastMove         `json:"lastMove,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// LastMove records the single most recent committed action together with a
// full pre-move snapshot, which is what one-level undo restores. It is
// overwritten by every commit, pass, and undo.
type LastMove struct {
	Word      string    `json:"word"`
	Score     int       `json:"score"`
	PlayerUID string    `json:"playerUid"`
	PlayedAt  time.Time `json:"playedAt"`

	PrevBoard     map[string]Tile   `json:"prevBoard"`
	PrevBag       []Tile            `json:"prevBag"`
	PrevRacks     map[string][]Tile `json:"prevRacks"`
	PrevScores    map[string]int    `json:"prevScores"`
	PrevActiveUID string            `json:"prevActivePlayerUid"`
}

// Seated reports whether uid occupies one of the two player slots.
func (g *Game) Seated(uid string) bool {
	return uid != "" && (uid == g.Player1UID || uid == g.Player2UID)
}

// Opponent returns the other seated player's uid, or "" if the second slot
// is still open.
func (g *Game) Opponent(uid string) string {
	switch uid {
	case g.Player1UID:
		return g.Player2UID
	case g.Player2UID:
		return g.Player1UID
	}
	return ""
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate shared state.
func (g *Game) Clone() *Game {
	out := *g
	out.Bag = append([]Tile(nil), g.Bag...)
	out.Racks = cloneRacks(g.Racks)
	out.Board = cloneBoardMap(g.Board)
	out.Scores = cloneScores(g.Scores)
	if g.LastMove != nil {
		lm := *g.LastMove
		lm.PrevBoard = cloneBoardMap(g.LastMove.PrevBoard)
		lm.PrevBag = append([]Tile(nil), g.LastMove.PrevBag...)
		lm.PrevRacks = cloneRacks(g.LastMove.PrevRacks)
		lm.PrevScores = cloneScores(g.LastMove.PrevScores)
		out.LastMove = &lm
	}
	return &out
}

func cloneRacks(in map[string][]Tile) map[string][]Tile {
	if in == nil {
		return nil
	}
	out := make(map[string][]Tile, len(in))
	for k, v := range in {
		out[k] = append([]Tile(nil), v...)
	}
	return out
}

func cloneBoardMap(in map[string]Tile) map[string]Tile {
	if in == nil {
		return nil
	}
	out := make(map[string]Tile, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneScores(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Patch is a partial set of top-level Game fields. Nil fields are left
// untouched by Apply; set fields replace the stored value wholesale.
type Patch struct {
	Status       *Status
	Player2UID   *string
	ActiveUID    *string
	Bag          *[]Tile
	Racks        *map[string][]Tile
	Board        *map[string]Tile
	Scores       *map[string]int
	InvitedEmail *string
	LastMove     **LastMove
	UpdatedAt    *time.Time
}

// Apply merges the patch into g, field by field.
func (p Patch) Apply(g *Game) {
	if p.Status != nil {
		g.Status = *p.Status
	}
	if p.Player2UID != nil {
		g.Player2UID = *p.Player2UID
	}
	if p.ActiveUID != nil {
		g.ActiveUID = *p.ActiveUID
	}
	if p.Bag != nil {
		g.Bag = *p.Bag
	}
	if p.Racks != nil {
		g.Racks = *p.Racks
	}
	if p.Board != nil {
		g.Board = *p.Board
	}
	if p.Scores != nil {
		g.Scores = *p.Scores
	}
	if p.InvitedEmail != nil {
		g.InvitedEmail = *p.InvitedEmail
	}
	if p.LastMove != nil {
		g.LastMove = *p.LastMove
	}
	if p.UpdatedAt != nil {
		g.UpdatedAt = *p.UpdatedAt
	}
}
