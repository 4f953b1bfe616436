// internal/history/history.go
//
// Durable move history. Every committed action (scored moves, PASS, UNDO)
// is appended to the moves table, powering the per-game move list and the
// best-single-move leaderboard. Recording is best-effort from the caller's
// point of view: a failed insert is logged, never surfaced as a failed
// turn.

package history

import (
	"context"
	"database/sql"
	"time"
)

// Move is one recorded action.
type Move struct {
	GameID    string    `json:"gameId"`
	PlayerUID string    `json:"playerUid"`
	Word      string    `json:"word"`
	Score     int       `json:"score"`
	PlayedAt  time.Time `json:"playedAt"`
}

// LeaderboardRow is one entry of the best-moves leaderboard.
type LeaderboardRow struct {
	PlayerUID string `json:"playerUid"`
	GameID    string `json:"gameId"`
	Word      string `json:"word"`
	Score     int    `json:"score"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Record appends one move.
func (s *Store) Record(ctx context.Context, m Move) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moves (game_id, player_uid, word, score, played_at)
		 VALUES (?,?,?,?,?)`,
		m.GameID, m.PlayerUID, m.Word, m.Score, m.PlayedAt.UTC(),
	)
	return err
}

// GameMoves lists a game's moves, oldest first.
func (s *Store) GameMoves(ctx context.Context, gameID string, limit int) ([]Move, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT game_id, player_uid, word, score, played_at
		 FROM moves WHERE game_id=? ORDER BY played_at ASC, id ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Move{}
	for rows.Next() {
		var m Move
		if err := rows.Scan(&m.GameID, &m.PlayerUID, &m.Word, &m.Score, &m.PlayedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopMoves returns the highest-scoring single moves across all games.
// PASS/UNDO rows score zero and never place.
func (s *Store) TopMoves(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_uid, game_id, word, score
		 FROM moves WHERE score > 0
		 ORDER BY score DESC, played_at ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LeaderboardRow{}
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerUID, &r.GameID, &r.Word, &r.Score); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
