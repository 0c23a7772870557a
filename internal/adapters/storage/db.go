package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SandboxDSN is an in-memory database; its contents vanish with the process.
const SandboxDSN = ":memory:"

// TimeLayout is how instants are stored in TEXT columns.
const TimeLayout = time.RFC3339Nano

// OpenSandbox opens an in-memory SQLite database, creates the schema and wraps it in a TimedDB.
// PRE: slowQuery > 0
// POST: a single pooled connection holds the whole database
// INVARIANT: stores must finish reading a result set before issuing the next query
func OpenSandbox(ctx context.Context, slowQuery time.Duration) (*TimedDB, error) {
	db, err := sql.Open("sqlite", SandboxDSN)
	if err != nil {
		return nil, fmt.Errorf("open sandbox database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return NewTimedDB(db, slowQuery), nil
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, foreign keys enforced
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		starts_at TEXT NOT NULL,
		phase TEXT NOT NULL,
		total_eligible INTEGER NOT NULL DEFAULT 0,
		attended INTEGER NOT NULL DEFAULT 0,
		rate_percent INTEGER NOT NULL DEFAULT 0,
		participants INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS course_share (
		event_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		value REAL NOT NULL,
		color TEXT NOT NULL,
		PRIMARY KEY (event_id, position),
		FOREIGN KEY (event_id) REFERENCES event(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS year_course (
		event_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		course_a REAL NOT NULL,
		course_b REAL NOT NULL,
		PRIMARY KEY (event_id, position),
		FOREIGN KEY (event_id) REFERENCES event(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS student (
		id TEXT PRIMARY KEY,
		rfid TEXT UNIQUE,
		name TEXT NOT NULL,
		course TEXT NOT NULL,
		year INTEGER NOT NULL,
		section TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		event_name TEXT NOT NULL,
		student_id TEXT NOT NULL,
		name TEXT NOT NULL,
		course TEXT NOT NULL,
		year INTEGER NOT NULL,
		section TEXT NOT NULL,
		session TEXT NOT NULL,
		status TEXT NOT NULL,
		source TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_event ON attendance(event_id, recorded_at);
	CREATE INDEX IF NOT EXISTS idx_attendance_student ON attendance(student_id, recorded_at);

	CREATE TABLE IF NOT EXISTS report (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		student_name TEXT NOT NULL,
		course TEXT NOT NULL,
		year TEXT NOT NULL,
		section TEXT NOT NULL,
		event_id TEXT,
		event_name TEXT NOT NULL,
		message TEXT NOT NULL,
		full_message TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		decided_at TEXT
	);

	CREATE TABLE IF NOT EXISTS report_attachment (
		report_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		content_type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		url TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (report_id, position),
		FOREIGN KEY (report_id) REFERENCES report(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS event_request (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		date_start TEXT NOT NULL,
		time_start TEXT NOT NULL,
		date_end TEXT NOT NULL,
		time_end TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// FormatTime renders t for storage. The zero time is stored as NULL.
func FormatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(TimeLayout)
}

// ParseTime reads a stored instant. NULL or empty gives the zero time.
func ParseTime(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(TimeLayout, s.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s.String, err)
	}
	return t, nil
}
