// internal/httpserver/routes_game.go
//
// HTTP routes for games. All gated by requireAuth.
//   - POST   /games               → create a game (short shareable code)
//   - GET    /games/mine          → list the caller's games (both seats)
//   - GET    /games/{id}          → current snapshot
//   - GET    /games/{id}/events   → SSE stream of snapshots (store watch)
//   - POST   /games/{id}/join     → take the second seat
//   - POST   /games/{id}/move     → commit a staged placement set
//   - POST   /games/{id}/pass     → pass the turn
//   - POST   /games/{id}/undo     → undo the last action
//   - GET    /games/{id}/moves    → move history
//   - DELETE /games/{id}          → delete (creator only)
//   - GET    /leaderboard         → best single moves across games
//
// The turn protocol itself lives in internal/game; handlers only hydrate a
// session, run the pure operations, and write the resulting patch through
// the store. A failed write leaves nothing half-applied: the client's
// staged tiles stay put and the next snapshot is authoritative.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rsheyd/girlfriend-mode/internal/game"
	"github.com/rsheyd/girlfriend-mode/internal/history"
	"github.com/rsheyd/girlfriend-mode/internal/session"
	"github.com/rsheyd/girlfriend-mode/internal/store"
)

// mountGameRoutes registers all /games and /leaderboard routes.
func (s *Server) mountGameRoutes() {
	s.r.With(s.requireAuth()).Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/mine", s.handleMyGames)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Get("/events", s.handleGameEvents)
			r.Post("/join", s.handleJoinGame)
			r.Post("/move", s.handleMove)
			r.Post("/pass", s.handlePass)
			r.Post("/undo", s.handleUndo)
			r.Get("/moves", s.handleGameMoves)
			r.Delete("/", s.handleDeleteGame)
		})
	})
	s.r.With(s.requireAuth()).Get("/leaderboard", s.handleLeaderboard)
}

// ------------------------------ create / list ------------------------------

type createGameReq struct {
	InvitedEmail string `json:"invitedEmail"`
}
type createGameRes struct {
	GameID string     `json:"gameId"`
	Game   *game.Game `json:"game"`
}

// handleCreateGame allocates a shareable code and persists a fresh waiting
// game with seven tiles dealt to the creator.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	var req createGameReq
	_ = json.NewDecoder(r.Body).Decode(&req) // body optional

	code, err := store.NewCode(r.Context(), s.store)
	if err != nil {
		log.Error().Err(err).Msg("allocate game code")
		jsonError(w, http.StatusServiceUnavailable, "code_allocation_failed")
		return
	}
	g := game.NewGame(me.ID, req.InvitedEmail, s.rng, time.Now().UTC())
	if err := s.store.Create(r.Context(), code, g); err != nil {
		log.Error().Err(err).Str("gameId", code).Msg("create game")
		jsonError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(createGameRes{GameID: code, Game: g})
}

// gameSummary is the /games/mine list entry.
type gameSummary struct {
	GameID    string         `json:"gameId"`
	Status    game.Status    `json:"status"`
	ActiveUID string         `json:"activePlayerUid"`
	Scores    map[string]int `json:"scores"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// handleMyGames scans both player-slot attributes for the caller's uid,
// newest first.
func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	games, err := store.ListByPlayer(r.Context(), s.store, me.ID)
	if err != nil {
		log.Error().Err(err).Msg("list games")
		jsonError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	out := make([]gameSummary, 0, len(games))
	for id, g := range games {
		out = append(out, gameSummary{
			GameID:    id,
			Status:    g.Status,
			ActiveUID: g.ActiveUID,
			Scores:    g.Scores,
			UpdatedAt: g.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	_ = json.NewEncoder(w).Encode(out)
}

// ----------------------------- snapshot / watch ----------------------------

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(createGameRes{GameID: id, Game: g})
}

// handleGameEvents streams snapshots over SSE until the client goes away,
// the game is deleted, or the request-timeout middleware ends the stream
// (EventSource reconnects transparently).
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	events, err := s.store.Watch(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		jsonError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for ev := range events {
		if ev.Err != nil {
			fmt.Fprintf(w, "event: gone\ndata: {\"error\":%q}\n\n", ev.Err.Error())
			flusher.Flush()
			return
		}
		doc, err := json.Marshal(ev.Game)
		if err != nil {
			log.Error().Err(err).Str("gameId", id).Msg("encode snapshot")
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", doc)
		flusher.Flush()
	}
}

// --------------------------------- turns -----------------------------------

type placementReq struct {
	TileID string `json:"tileId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}
type moveReq struct {
	Placements []placementReq `json:"placements"`
}

// handleMove stages the submitted placements on a hydrated session,
// validates and scores them, and commits the result through the store.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	id := chi.URLParam(r, "id")

	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return
	}

	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}

	sess := session.New(me.ID)
	sess.Hydrate(g)
	for _, p := range req.Placements {
		if !sess.Place(p.TileID, game.Coord{Row: p.Row, Col: p.Col}) {
			jsonError(w, http.StatusUnprocessableEntity, "illegal_placement")
			return
		}
	}

	res, err := sess.ScoreStaged(game.Layout())
	if err != nil {
		writeTurnError(w, err)
		return
	}
	patch, err := game.Commit(g, sess.Board, sess.Rack, res, me.ID, time.Now().UTC())
	if err != nil {
		writeTurnError(w, err)
		return
	}
	if err := s.store.Patch(r.Context(), id, patch); err != nil {
		writeTurnError(w, err)
		return
	}
	s.recordMove(r, id, me.ID, res.Word, res.Score)
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	id := chi.URLParam(r, "id")

	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}
	patch, err := game.Pass(g, me.ID, time.Now().UTC())
	if err != nil {
		writeTurnError(w, err)
		return
	}
	if err := s.store.Patch(r.Context(), id, patch); err != nil {
		writeTurnError(w, err)
		return
	}
	s.recordMove(r, id, me.ID, game.WordPass, 0)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	id := chi.URLParam(r, "id")

	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}
	// Staged tiles live client-side and are never persisted, so from the
	// server's view nothing is staged; clients gate undo locally while a
	// move is in progress.
	patch, err := game.Undo(g, me.ID, false, time.Now().UTC())
	if err != nil {
		writeTurnError(w, err)
		return
	}
	if err := s.store.Patch(r.Context(), id, patch); err != nil {
		writeTurnError(w, err)
		return
	}
	s.recordMove(r, id, me.ID, game.WordUndo, 0)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ------------------------------ join / delete ------------------------------

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	id := chi.URLParam(r, "id")

	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}
	patch, err := game.Join(g, me.ID, time.Now().UTC())
	if err != nil {
		writeTurnError(w, err)
		return
	}
	if err := s.store.Patch(r.Context(), id, patch); err != nil {
		writeTurnError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	me := currentUser(r)
	id := chi.URLParam(r, "id")

	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeTurnError(w, err)
		return
	}
	if g.Player1UID != me.ID {
		writeTurnError(w, game.ErrNotCreator)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeTurnError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// --------------------------- history / leaderboard -------------------------

func (s *Server) handleGameMoves(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	moves, err := s.hist.GameMoves(r.Context(), id, 100)
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("list moves")
		jsonError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(moves)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.hist.TopMoves(r.Context(), 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		jsonError(w, http.StatusInternalServerError, "query_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// recordMove appends to the move history; failures are logged, never
// surfaced. History is a convenience, not part of the turn protocol.
func (s *Server) recordMove(r *http.Request, gameID, uid, word string, score int) {
	m := history.Move{GameID: gameID, PlayerUID: uid, Word: word, Score: score, PlayedAt: time.Now().UTC()}
	if err := s.hist.Record(r.Context(), m); err != nil {
		log.Warn().Err(err).Str("gameId", gameID).Msg("record move")
	}
}

// writeTurnError maps domain errors onto HTTP statuses: validation → 422,
// precondition → 409, missing game → 404, anything else → 500. Validation
// and precondition bodies carry the human-readable reason for inline
// display.
func writeTurnError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoTiles),
		errors.Is(err, game.ErrFirstMoveCenter),
		errors.Is(err, game.ErrNotInLine),
		errors.Is(err, game.ErrWordGap):
		http.Error(w, `{"error":`+quote(err.Error())+`}`, http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrNotSeated),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrNotJoinable),
		errors.Is(err, game.ErrOwnGame),
		errors.Is(err, game.ErrSeatTaken),
		errors.Is(err, game.ErrNotLastActor),
		errors.Is(err, game.ErrNothingToUndo),
		errors.Is(err, game.ErrUndoOfUndo),
		errors.Is(err, game.ErrStagedPending),
		errors.Is(err, game.ErrNotCreator):
		http.Error(w, `{"error":`+quote(err.Error())+`}`, http.StatusConflict)
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "game_not_found")
	default:
		log.Error().Err(err).Msg("store operation failed")
		jsonError(w, http.StatusInternalServerError, "store_error")
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
