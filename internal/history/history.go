// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists digest runs and reported papers across runs so
// that a paper is never reported twice.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const defaultDBPath = "data/digest.db"

// Store manages the digest history SQLite database. The pipeline core
// never touches it; command wiring reads the seen set out before a run and
// records the outcome after delivery.
type Store struct {
	db *sql.DB
}

// Run is one recorded pipeline run.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Considered int       `json:"considered"`
	Included   int       `json:"included"`
	Status     string    `json:"status"`
}

// NewStore opens or creates the history database at cfg.DBPath and creates
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			considered INTEGER NOT NULL DEFAULT 0,
			included INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			identifier TEXT PRIMARY KEY,
			title TEXT,
			first_reported_run TEXT NOT NULL REFERENCES runs(id),
			reported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_reported_at ON papers(reported_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Timestamps are stored as second-resolution RFC3339 in UTC so that string
// comparison in SQL matches chronological order.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// RecordRun inserts or updates one run row.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, considered, included, status)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			started_at=excluded.started_at, finished_at=excluded.finished_at,
			considered=excluded.considered, included=excluded.included,
			status=excluded.status`,
		run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Considered, run.Included, run.Status,
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// MarkReported records the report entries as reported under runID. A paper
// already present keeps its original first_reported_run and reported_at.
func (s *Store) MarkReported(ctx context.Context, runID string, entries []types.ReportEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO papers (identifier, title, first_reported_run, reported_at)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	for _, e := range entries {
		rec := e.Paper.Paper
		if _, err := stmt.ExecContext(ctx, rec.Identifier, rec.Title, runID, now); err != nil {
			return fmt.Errorf("marking %s reported: %w", rec.Identifier, err)
		}
	}
	return tx.Commit()
}

// ReportedIDs returns the identifiers of papers reported at or after since.
// The result feeds the dedup stage's cross-run seen set.
func (s *Store) ReportedIDs(ctx context.Context, since time.Time) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identifier FROM papers WHERE reported_at >= ?`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("querying reported papers: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning identifier: %w", err)
		}
		seen[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading reported papers: %w", err)
	}
	return seen, nil
}

// RecentRuns returns the most recent runs, newest first. A non-positive
// limit defaults to 10.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, considered, included, status
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.Considered, &run.Included, &run.Status); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading runs: %w", err)
	}
	return runs, nil
}

// Prune deletes papers reported before the cutoff, then runs started before
// it that no surviving paper references. It returns the number of papers
// removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	cutoff := formatTime(before)

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM papers WHERE reported_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning papers: %w", err)
	}
	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned papers: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE started_at < ?
		 AND id NOT IN (SELECT first_reported_run FROM papers)`, cutoff)
	if err != nil {
		return pruned, fmt.Errorf("pruning runs: %w", err)
	}
	return pruned, nil
}
