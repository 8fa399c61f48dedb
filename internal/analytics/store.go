// Package analytics persists per-turn violation events to SQLite so
// trends can be queried across sessions after the fact. Recording is
// best-effort from the guard's point of view: a write failure never blocks
// a turn decision.
package analytics

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ppiankov/turnwatch/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS turn_events (
	event_id    TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL,
	intent      TEXT NOT NULL,
	severity    TEXT NOT NULL,
	count       INTEGER NOT NULL,
	signal      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_turn_events_session
	ON turn_events(session_id);
`

// Store persists turn events in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the analytics database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordTurn inserts one processed turn event.
func (s *Store) RecordTurn(res model.TurnResult) error {
	_, err := s.db.Exec(
		`INSERT INTO turn_events (event_id, session_id, intent, severity, count, signal, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		res.SessionID,
		res.Intent,
		string(res.Severity),
		res.ViolationCount,
		string(res.Signal),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert turn event: %w", err)
	}
	return nil
}

// SessionTotals summarizes recorded events for one session.
type SessionTotals struct {
	SessionID  string `json:"session_id"`
	Turns      int    `json:"turns"`
	Severe     int    `json:"severe"`
	Moderate   int    `json:"moderate"`
	Warnings   int    `json:"warnings"`
	Terminates int    `json:"terminates"`
}

// Totals aggregates the event counts for a session.
func (s *Store) Totals(sessionID string) (SessionTotals, error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN severity = 'SEVERE' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN severity = 'MODERATE' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN signal = 'warning' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN signal = 'terminate' THEN 1 ELSE 0 END), 0)
		 FROM turn_events WHERE session_id = ?`,
		sessionID,
	)

	t := SessionTotals{SessionID: sessionID}
	if err := row.Scan(&t.Turns, &t.Severe, &t.Moderate, &t.Warnings, &t.Terminates); err != nil {
		return SessionTotals{}, fmt.Errorf("query session totals: %w", err)
	}
	return t, nil
}
