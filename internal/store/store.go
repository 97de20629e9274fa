// Package store records sweep reports in a local sqlite database.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout pads nanoseconds to fixed width so stored TEXT timestamps
// compare lexicographically in chronological order. RFC3339Nano trims
// trailing zeros, which would sort "10:00:00Z" after "10:00:00.5Z".
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t the way the store expects its timestamp columns.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type Store struct {
	db *sql.DB
}

// Sweep is one recorded run of the sweep command.
type Sweep struct {
	ID         string `json:"id"`
	Root       string `json:"root"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Total      int    `json:"total"`
	Broken     int    `json:"broken"`
	Loops      int    `json:"loops"`
}

// Entry is one symlink examined during a sweep.
type Entry struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout=3000;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordSweep inserts a sweep and its entries in one transaction.
func (s *Store) RecordSweep(sweep Sweep, entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sweeps (sweep_id, root, started_at, finished_at, total, broken, loops)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sweep.ID, sweep.Root, sweep.StartedAt, sweep.FinishedAt, sweep.Total, sweep.Broken, sweep.Loops)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		_, err = tx.Exec(`
			INSERT INTO sweep_entries (sweep_id, path, target, status, detail)
			VALUES (?, ?, ?, ?, ?)
		`, sweep.ID, entry.Path, entry.Target, entry.Status, entry.Detail)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListSweeps returns the most recent sweeps, newest first.
func (s *Store) ListSweeps(limit int) ([]Sweep, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT sweep_id, root, started_at, finished_at, total, broken, loops
		FROM sweeps
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sweeps []Sweep
	for rows.Next() {
		var sweep Sweep
		if err := rows.Scan(&sweep.ID, &sweep.Root, &sweep.StartedAt, &sweep.FinishedAt, &sweep.Total, &sweep.Broken, &sweep.Loops); err != nil {
			return nil, err
		}
		sweeps = append(sweeps, sweep)
	}
	return sweeps, rows.Err()
}

// SweepEntries returns the recorded entries for one sweep.
func (s *Store) SweepEntries(sweepID string) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT path, target, status, detail
		FROM sweep_entries
		WHERE sweep_id = ?
		ORDER BY path
	`, sweepID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Path, &entry.Target, &entry.Status, &entry.Detail); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PruneSweeps deletes sweeps started before cutoff, returning how many were
// removed. Entries go with them via the cascade.
func (s *Store) PruneSweeps(cutoff time.Time) (int, error) {
	result, err := s.db.Exec(`
		DELETE FROM sweeps WHERE started_at < ?
	`, FormatTime(cutoff))
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
