// Package store handles SQLite persistence of solve history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/solve"

	_ "modernc.org/sqlite" // SQLite driver.
)

// DefaultPuzzle is the puzzle recorded for timer sessions.
const DefaultPuzzle = "333"

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for solve history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			puzzle TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			idx INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			penalty TEXT NOT NULL,
			scramble TEXT NOT NULL,
			UNIQUE (session_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// StartSession registers a new timer session and returns its id.
func (s *Store) StartSession(ctx context.Context, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, puzzle) VALUES (?, ?, ?)`,
		id, startedAt.UTC().Format(timeLayout), DefaultPuzzle)
	if err != nil {
		return "", err
	}
	return id, nil
}

// InsertSolve stores the solve at index idx of a session.
func (s *Store) InsertSolve(ctx context.Context, sessionID string, idx int, sv solve.Solve) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solves (session_id, idx, recorded_at, elapsed_ns, penalty, scramble)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID,
		idx,
		sv.Timestamp.UTC().Format(timeLayout),
		int64(sv.Time.Elapsed),
		sv.Time.Penalty.String(),
		sv.Scramble,
	)
	return err
}

// UpdatePenalty changes the penalty of a stored solve.
func (s *Store) UpdatePenalty(ctx context.Context, sessionID string, idx int, p solve.Penalty) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE solves SET penalty = ? WHERE session_id = ? AND idx = ?`,
		p.String(), sessionID, idx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("solve %d of session %s not found", idx, sessionID)
	}
	return nil
}

func sessionFilter(cfg model.HistoryConfig) (string, []any) {
	clauses := []string{"EXISTS (SELECT 1 FROM solves WHERE solves.session_id = sessions.id)"}
	args := []any{}
	if cfg.SessionID != "" {
		clauses = append(clauses, "id = ?")
		args = append(args, cfg.SessionID)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, started_at, puzzle FROM sessions WHERE %s ORDER BY started_at DESC`, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}
	return query, args
}

// ListSessions returns sessions matching the filter, oldest first, with
// their solve counts. Sessions without solves are skipped.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error) {
	inner, args := sessionFilter(cfg)
	query := fmt.Sprintf(`SELECT f.id, f.started_at, f.puzzle, COUNT(sv.id) AS solves
		FROM (%s) f
		JOIN solves sv ON sv.session_id = f.id
		GROUP BY f.id, f.started_at, f.puzzle
		ORDER BY f.started_at ASC`, inner)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var startedAt string
		if err := rows.Scan(&rec.ID, &startedAt, &rec.Puzzle, &rec.Solves); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, err
		}
		rec.StartedAt = parsed
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListSolves returns solves of the sessions matching the filter, ordered
// by session start and index.
func (s *Store) ListSolves(ctx context.Context, cfg model.HistoryConfig) ([]model.SolveRecord, error) {
	inner, args := sessionFilter(cfg)
	query := fmt.Sprintf(`SELECT sv.session_id, sv.idx, sv.recorded_at, sv.elapsed_ns, sv.penalty, sv.scramble
		FROM solves sv
		JOIN (%s) f ON f.id = sv.session_id
		ORDER BY f.started_at ASC, sv.idx ASC`, inner)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SolveRecord
	for rows.Next() {
		var rec model.SolveRecord
		var recordedAt string
		var elapsed int64
		if err := rows.Scan(&rec.SessionID, &rec.Index, &recordedAt, &elapsed, &rec.Penalty, &rec.Scramble); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, err
		}
		rec.RecordedAt = parsed
		rec.Elapsed = time.Duration(elapsed)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
