package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// seq keeps insertion order stable; ids are random uuids.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS diary_entries (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT UNIQUE NOT NULL,
    owner_id INTEGER NOT NULL,
    entry_date TEXT NOT NULL,
    body TEXT NOT NULL,
    mood TEXT NOT NULL DEFAULT 'content',
    mood_intensity INTEGER NOT NULL DEFAULT 3 CHECK (mood_intensity BETWEEN 1 AND 5),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS diary_entries_owner_idx ON diary_entries (owner_id, seq);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS diary_entries (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT UNIQUE NOT NULL,
    owner_id INTEGER NOT NULL,
    entry_date TEXT NOT NULL,
    body TEXT NOT NULL,
    mood TEXT NOT NULL DEFAULT 'content',
    mood_intensity INTEGER NOT NULL DEFAULT 3 CHECK (mood_intensity BETWEEN 1 AND 5),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS diary_entries_owner_idx ON diary_entries (owner_id, seq);
`

// RunMigrations creates the schema for the connection's driver. It is safe to run on every start.
func RunMigrations(ctx context.Context, conn *sqlx.DB) error {
	var schema string
	switch conn.DriverName() {
	case DriverPostgres:
		schema = postgresSchema
	case DriverSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", conn.DriverName())
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate diary_entries: %w", err)
	}
	return nil
}
