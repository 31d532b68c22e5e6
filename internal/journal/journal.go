// Package journal records note mutations in a SQLite activity log.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/pocketnotes/internal/models"
)

// Event kinds.
const (
	KindSaved    = "saved"
	KindDeleted  = "deleted"
	KindReloaded = "reloaded"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	kind     TEXT NOT NULL,
	filename TEXT NOT NULL DEFAULT '',
	title    TEXT NOT NULL DEFAULT '',
	at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_events_filename ON events(filename);
`

const defaultLimit = 50

// DB wraps a sql.DB with journal operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record appends an event and returns it with its assigned id. A zero At is
// set to the current time.
func (db *DB) Record(ev models.ActivityEvent) (models.ActivityEvent, error) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	ev.At = ev.At.UTC()
	res, err := db.conn.Exec(`INSERT INTO events (kind, filename, title, at) VALUES (?, ?, ?, ?)`,
		ev.Kind, ev.Filename, ev.Title, ev.At)
	if err != nil {
		return ev, fmt.Errorf("journal: record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ev, fmt.Errorf("journal: last insert id: %w", err)
	}
	ev.ID = id
	return ev, nil
}

// Recent returns the latest events, newest first.
func (db *DB) Recent(limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := db.conn.Query(`
		SELECT id, kind, filename, title, at
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	return scanEvents(rows)
}

// Since returns events with an id greater than after, oldest first.
func (db *DB) Since(after int64, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := db.conn.Query(`
		SELECT id, kind, filename, title, at
		FROM events
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?
	`, after, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: since: %w", err)
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]models.ActivityEvent, error) {
	defer rows.Close()
	out := []models.ActivityEvent{}
	for rows.Next() {
		var ev models.ActivityEvent
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.Filename, &ev.Title, &ev.At); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
