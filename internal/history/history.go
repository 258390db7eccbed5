// Package history is an append-only SQLite ledger of pipeline runs: one row
// per run plus per-stage start/finish rows. The pipeline never reads the
// ledger back to make decisions; it exists purely for operators asking "what
// ran here, and when". Ledger write failures are reported as warnings by the
// caller, never as pipeline faults.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store records one run into the ledger database.
type Store struct {
	db    *sql.DB
	runID string
}

// Open opens (or creates) the ledger at path and prepares the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history ledger: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			start_from TEXT,
			base_path TEXT,
			merged_name TEXT,
			status TEXT,
			error TEXT,
			started_at DATETIME,
			finished_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_stages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			stage TEXT,
			status TEXT,
			detail TEXT,
			started_at DATETIME,
			finished_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("prepare history ledger: %w", err)
		}
	}

	return &Store{db: db, runID: uuid.NewString()}, nil
}

// RunID returns the ledger id assigned to this run.
func (s *Store) RunID() string { return s.runID }

// BeginRun inserts the run row with status "running".
func (s *Store) BeginRun(startFrom, basePath, mergedName string) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, start_from, base_path, merged_name, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.runID, startFrom, basePath, mergedName, "running", time.Now().UTC())
	return err
}

// StageStarted appends a "started" row for stage.
func (s *Store) StageStarted(stage string) error {
	_, err := s.db.Exec(
		`INSERT INTO run_stages (run_id, stage, status, started_at) VALUES (?, ?, ?, ?)`,
		s.runID, stage, "started", time.Now().UTC())
	return err
}

// StageCompleted marks the most recent row for stage as completed, with a
// short human-readable detail (e.g. "2 datasets merged").
func (s *Store) StageCompleted(stage, detail string) error {
	_, err := s.db.Exec(
		`UPDATE run_stages SET status = ?, detail = ?, finished_at = ?
		 WHERE id = (SELECT MAX(id) FROM run_stages WHERE run_id = ? AND stage = ?)`,
		"completed", detail, time.Now().UTC(), s.runID, stage)
	return err
}

// FinishRun records the terminal status of the run. runErr may be nil.
func (s *Store) FinishRun(runErr error) error {
	status := "completed"
	errText := ""
	if runErr != nil {
		status = "failed"
		errText = runErr.Error()
	}
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		status, errText, time.Now().UTC(), s.runID)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
