// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed the single state row. The election always has exactly one
	// phase; inserting it here keeps every later operation a plain UPDATE.
	_, err = db.Exec(`
		INSERT INTO election_state (id, status)
		SELECT 1, 0
		WHERE NOT EXISTS (SELECT 1 FROM election_state WHERE id = 1)
	`)
	if err != nil {
		return fmt.Errorf("failed to seed election state: %w", err)
	}

	return nil
}

const schema = `
-- Workflow state register (single row, id always 1)
CREATE TABLE IF NOT EXISTS election_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    status INTEGER NOT NULL DEFAULT 0 CHECK (status BETWEEN 0 AND 5)
);

-- Voter records. Rows are never deleted: a full reset rewrites them to the
-- unregistered default instead.
CREATE TABLE IF NOT EXISTS voter (
    address TEXT PRIMARY KEY,
    is_registered BOOLEAN NOT NULL DEFAULT FALSE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_proposal_id INTEGER NOT NULL DEFAULT 0
);

-- Roster: registration-ordered index over the voter table, since the voter
-- mapping alone gives no iteration order. Grows during registration, cleared
-- only by a full reset.
CREATE TABLE IF NOT EXISTS roster (
    position INTEGER PRIMARY KEY,
    address TEXT NOT NULL UNIQUE
);

-- Proposals, dense 0-based ids in submission order
CREATE TABLE IF NOT EXISTS proposal (
    id INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0)
);

-- Append-only notification log
CREATE TABLE IF NOT EXISTS event (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    emitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_event_kind ON event(kind);
`
