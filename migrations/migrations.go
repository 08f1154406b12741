// Package migrations holds the relational schema and applies it at server
// start. Statements are idempotent so repeated starts are safe.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`CREATE TABLE IF NOT EXISTS users (
		id    BIGSERIAL PRIMARY KEY,
		name  TEXT NOT NULL,
		email TEXT NOT NULL,
		CONSTRAINT users_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS requests (
		id           BIGSERIAL PRIMARY KEY,
		description  TEXT NOT NULL,
		requester_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		available   BOOLEAN NOT NULL,
		owner_id    BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		request_id  BIGINT REFERENCES requests (id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGSERIAL PRIMARY KEY,
		start_date TIMESTAMPTZ NOT NULL,
		end_date   TIMESTAMPTZ NOT NULL,
		status     TEXT NOT NULL,
		item_id    BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
		booker_id  BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT bookings_window_check CHECK (end_date > start_date),
		CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
			item_id WITH =,
			tstzrange(start_date, end_date, '[]') WITH &&
		) WHERE (status IN ('WAITING', 'APPROVED'))
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id        BIGSERIAL PRIMARY KEY,
		text      TEXT NOT NULL,
		item_id   BIGINT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
		author_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		created   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS bookings_item_idx ON bookings (item_id, status)`,

	`CREATE INDEX IF NOT EXISTS items_owner_idx ON items (owner_id)`,
}

func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
