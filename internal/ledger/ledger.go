// Package ledger is the opt-in telemetry sink for generation calls: one
// SQLite row per call, metadata only. Prompts, model output, and plans are
// never stored, and the pipeline never reads the ledger back.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alexanderramin/wodforge/internal/llm"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS llm_calls (
		call_id    TEXT PRIMARY KEY,
		task       TEXT NOT NULL,
		provider   TEXT NOT NULL,
		model      TEXT NOT NULL,
		latency_ms INTEGER NOT NULL,
		status     TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_llm_calls_created ON llm_calls(created_at)`,
}

// Ledger appends one row per generation call. It implements llm.Observer.
type Ledger struct {
	db *sql.DB
}

// Open opens the ledger database at path, creating it and its schema when
// missing. ":memory:" opens a throwaway in-memory ledger.
func Open(path string) (*Ledger, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("ledger migration %d: %w", i, err)
		}
	}

	return &Ledger{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Ledger) Close() error { return l.db.Close() }

// OnCallComplete appends one row for the event. Write failures are dropped;
// telemetry must never interfere with a run.
func (l *Ledger) OnCallComplete(event llm.CallEvent) {
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	_, _ = l.db.Exec(
		`INSERT INTO llm_calls (call_id, task, provider, model, latency_ms, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), string(event.Task), string(event.Provider), event.Model,
		event.LatencyMs, status, time.Now().UTC().Format(time.RFC3339),
	)
}

// Entry is one recorded generation call.
type Entry struct {
	CallID    string
	Task      string
	Provider  string
	Model     string
	LatencyMs int64
	Status    string
	CreatedAt string
}

// Recent returns the newest entries, most recent first. A non-positive
// limit falls back to 20.
func (l *Ledger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT call_id, task, provider, model, latency_ms, status, created_at
		 FROM llm_calls
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.CallID, &e.Task, &e.Provider, &e.Model, &e.LatencyMs, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
