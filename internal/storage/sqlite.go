package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS turns (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	ts                 TEXT    NOT NULL,
	session_id         TEXT    NOT NULL,
	user_message       TEXT    NOT NULL,
	assistant_response TEXT    NOT NULL,
	is_error           INTEGER NOT NULL DEFAULT 0,
	failure_kind       TEXT    NOT NULL DEFAULT '',
	model              TEXT    NOT NULL DEFAULT '',
	prompt_tokens      INTEGER NOT NULL DEFAULT 0,
	completion_tokens  INTEGER NOT NULL DEFAULT 0,
	total_tokens       INTEGER NOT NULL DEFAULT 0,
	latency_ms         INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS turns_ts ON turns (ts);
`

// SQLiteRecorder keeps the journal in a single-table SQLite database.
type SQLiteRecorder struct {
	db   *sql.DB
	path string
}

// NewSQLiteRecorder creates the database (and its directory) if needed.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure journal dir: %w", err)
	}
	return openSQLite(path)
}

// OpenSQLiteRecorder opens an existing journal database.
func OpenSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("open journal: %s is a directory", path)
	}
	return openSQLite(path)
}

func openSQLite(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; the driver serializes anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteRecorder{db: db, path: path}, nil
}

func (r *SQLiteRecorder) Close() error { return r.db.Close() }

func (r *SQLiteRecorder) AppendInteraction(event Event) error {
	_, err := r.db.Exec(`INSERT INTO turns
		(ts, session_id, user_message, assistant_response, is_error, failure_kind, model,
		 prompt_tokens, completion_tokens, total_tokens, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		event.SessionID,
		event.UserMessage,
		event.AssistantResponse,
		event.IsError,
		event.FailureKind,
		event.Model,
		event.PromptTokens,
		event.CompletionTokens,
		event.TotalTokens,
		event.LatencyMS,
	)
	if err != nil {
		return fmt.Errorf("insert turn: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) LoadInteractions() ([]Event, error) {
	rows, err := r.db.Query(`SELECT ts, session_id, user_message, assistant_response, is_error,
		failure_kind, model, prompt_tokens, completion_tokens, total_tokens, latency_ms
		FROM turns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var ts string
		if err := rows.Scan(&ts, &ev.SessionID, &ev.UserMessage, &ev.AssistantResponse, &ev.IsError,
			&ev.FailureKind, &ev.Model, &ev.PromptTokens, &ev.CompletionTokens, &ev.TotalTokens, &ev.LatencyMS); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		ev.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", ts, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return events, nil
}
