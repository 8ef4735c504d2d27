package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// whole list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		position    INTEGER NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT,
		paused_ns   INTEGER NOT NULL DEFAULT 0 CHECK(paused_ns >= 0),
		hourly_rate REAL NOT NULL DEFAULT 0 CHECK(hourly_rate >= 0)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_position ON sessions(position)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		id          TEXT PRIMARY KEY DEFAULT 'default',
		hourly_rate REAL NOT NULL,
		updated_at  TEXT
	)`,
}
