package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultListLimit bounds List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Store records runs in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the history database at dbPath.
// Use ":memory:" for a throwaway in-memory store.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrSchemaFailed, err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		module_id TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		sections INTEGER NOT NULL,
		items INTEGER NOT NULL,
		sections_hash TEXT,
		output_path TEXT NOT NULL,
		changed INTEGER NOT NULL,
		warnings TEXT,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends a run.
func (s *Store) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var warningsJSON []byte
	if len(run.Warnings) > 0 {
		var err error
		warningsJSON, err = json.Marshal(run.Warnings)
		if err != nil {
			return fmt.Errorf("%w: marshal warnings: %w", ErrRecordFailed, err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, module_id, started_at, duration_ms, outcome, sections, items,
			sections_hash, output_path, changed, warnings, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ModuleID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Outcome,
		run.Sections, run.Items, run.SectionsHash, run.OutputPath, run.Changed, string(warningsJSON), run.Error,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRecordFailed, err)
	}
	return nil
}

// List returns up to limit runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, module_id, started_at, duration_ms, outcome, sections, items,
			sections_hash, output_path, changed, warnings, error
		FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var startedMS, durationMS int64
		var hash, warnings, errText sql.NullString

		err := rows.Scan(&r.ID, &r.RunID, &r.ModuleID, &startedMS, &durationMS, &r.Outcome,
			&r.Sections, &r.Items, &hash, &r.OutputPath, &r.Changed, &warnings, &errText)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %w", ErrQueryFailed, err)
		}

		r.StartedAt = time.UnixMilli(startedMS).UTC()
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.SectionsHash = hash.String
		r.Error = errText.String
		if warnings.String != "" {
			if err := json.Unmarshal([]byte(warnings.String), &r.Warnings); err != nil {
				return nil, fmt.Errorf("%w: unmarshal warnings: %w", ErrQueryFailed, err)
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", ErrQueryFailed, err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
