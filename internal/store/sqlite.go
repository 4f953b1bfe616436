// internal/store/sqlite.go
//
// SQLite-backed implementation of the Store interface.
// The game snapshot is stored as one JSON document per row, with the two
// player-slot uids denormalized into indexed columns so Query stays a
// plain WHERE clause. Patch is read-modify-write inside a transaction;
// the merge itself is game.Patch.Apply, identical to the memory store.
//
// Push notification is in-process via the shared watch hub: every write
// that goes through this store publishes the fresh snapshot. That covers
// single-process deployments; writes from another process would go unseen
// until the next read, same as any poll-free local cache.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rsheyd/girlfriend-mode/internal/game"
)

// sqliteStore persists games in a games table; see sql/001_init.sql.
type sqliteStore struct {
	db  *sql.DB
	mu  sync.Mutex // serializes write+publish so watchers see writes in order
	hub *watchHub
}

// NewSQLiteStore wraps db (already opened and migrated) as a Store.
func NewSQLiteStore(db *sql.DB) Store {
	return &sqliteStore{db: db, hub: newWatchHub()}
}

func (s *sqliteStore) Create(ctx context.Context, id string, g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, player1_uid, player2_uid, status, snapshot, updated_at)
		VALUES (?,?,?,?,?,?)`,
		id, g.Player1UID, g.Player2UID, string(g.Status), string(doc), g.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return ErrExists
		}
		return fmt.Errorf("insert game: %w", err)
	}
	s.hub.publish(id, Event{Game: g.Clone()})
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*game.Game, error) {
	return s.get(ctx, s.db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *sqliteStore) get(ctx context.Context, q querier, id string) (*game.Game, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT snapshot FROM games WHERE id=?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read game: %w", err)
	}
	var g game.Game
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	return &g, nil
}

func (s *sqliteStore) Patch(ctx context.Context, id string, p game.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	g, err := s.get(ctx, tx, id)
	if err != nil {
		return err
	}
	p.Apply(g)

	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE games SET player1_uid=?, player2_uid=?, status=?, snapshot=?, updated_at=?
		WHERE id=?`,
		g.Player1UID, g.Player2UID, string(g.Status), string(doc), g.UpdatedAt.UTC(), id); err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game update: %w", err)
	}
	s.hub.publish(id, Event{Game: g})
	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.hub.closeAll(id, Event{Err: ErrNotFound})
	return nil
}

func (s *sqliteStore) Query(ctx context.Context, field, value string) (map[string]*game.Game, error) {
	var col string
	switch field {
	case FieldPlayer1:
		col = "player1_uid"
	case FieldPlayer2:
		col = "player2_uid"
	default:
		return nil, ErrBadQueryField
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, snapshot FROM games WHERE `+col+`=?`, value)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*game.Game)
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		var g game.Game
		if err := json.Unmarshal([]byte(doc), &g); err != nil {
			return nil, fmt.Errorf("decode game %s: %w", id, err)
		}
		out[id] = &g
	}
	return out, rows.Err()
}

func (s *sqliteStore) Watch(ctx context.Context, id string) (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.get(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return s.hub.subscribe(ctx, id, &Event{Game: g}), nil
}

// isUniqueViolation matches sqlite's primary-key conflict without binding
// to driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY constraint failed"))
}
