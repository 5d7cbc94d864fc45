package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		table_id TEXT NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('open', 'closed')),
		guest_count INTEGER NOT NULL DEFAULT 0,
		subtotal NUMERIC(12, 2) NOT NULL DEFAULT 0,
		tax NUMERIC(12, 2) NOT NULL DEFAULT 0,
		service NUMERIC(12, 2) NOT NULL DEFAULT 0,
		total NUMERIC(12, 2) NOT NULL DEFAULT 0,
		opened_at TIMESTAMPTZ NOT NULL,
		closed_at TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS sessions_one_open_per_table ON sessions (table_id) WHERE status = 'open'`,

	`CREATE TABLE IF NOT EXISTS waves (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions (id),
		number INTEGER NOT NULL CHECK (number >= 1),
		status TEXT NOT NULL,
		fired_at TIMESTAMPTZ,
		station TEXT,
		subtotal NUMERIC(12, 2) NOT NULL DEFAULT 0,
		tax NUMERIC(12, 2) NOT NULL DEFAULT 0,
		service NUMERIC(12, 2) NOT NULL DEFAULT 0,
		total NUMERIC(12, 2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (session_id, number)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS waves_one_open_per_session ON waves (session_id) WHERE fired_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS seats (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions (id),
		number INTEGER NOT NULL,
		label TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT seats_session_number UNIQUE (session_id, number) DEFERRABLE INITIALLY DEFERRED
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		wave_id TEXT NOT NULL REFERENCES waves (id),
		session_id TEXT NOT NULL REFERENCES sessions (id),
		menu_item_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC(12, 2) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		seat_id TEXT REFERENCES seats (id),
		customizations_total NUMERIC(12, 2) NOT NULL DEFAULT 0,
		line_total NUMERIC(12, 2) NOT NULL,
		status TEXT NOT NULL,
		notes TEXT,
		sent_to_kitchen_at TIMESTAMPTZ,
		started_at TIMESTAMPTZ,
		ready_at TIMESTAMPTZ,
		served_at TIMESTAMPTZ,
		voided_at TIMESTAMPTZ,
		void_reason TEXT,
		refired_at TIMESTAMPTZ,
		refire_reason TEXT,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS items_wave ON items (wave_id)`,
	`CREATE INDEX IF NOT EXISTS items_session ON items (session_id)`,

	`CREATE TABLE IF NOT EXISTS item_customizations (
		id TEXT PRIMARY KEY,
		item_id TEXT NOT NULL REFERENCES items (id),
		option_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC(12, 2) NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions (id),
		wave_id TEXT REFERENCES waves (id),
		amount NUMERIC(12, 2) NOT NULL,
		tip NUMERIC(12, 2) NOT NULL DEFAULT 0,
		method TEXT NOT NULL,
		provider_ref TEXT,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions (id),
		type TEXT NOT NULL,
		payload JSONB NOT NULL,
		correlation_id TEXT NOT NULL,
		actor_id TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session ON session_events (session_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id TEXT PRIMARY KEY,
		location_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC(12, 2) NOT NULL,
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS menu_options (
		id TEXT PRIMARY KEY,
		menu_item_id TEXT NOT NULL REFERENCES menu_items (id),
		name TEXT NOT NULL,
		price NUMERIC(12, 2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS location_staff (
		user_id TEXT NOT NULL,
		location_id TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		PRIMARY KEY (user_id, location_id)
	)`,
}

// EnsureSchema creates the tables and indexes the service relies on. Every statement is idempotent.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
