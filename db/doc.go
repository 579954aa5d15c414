// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

The schema consists of five tables:

  - election_state: single-row workflow phase register
  - voter: per-address registration and vote record
  - roster: registration-ordered list of voter addresses
  - proposal: submitted proposals with running vote counts
  - event: append-only notification log

# Usage

Call CreateSchema after opening the database connection:

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

CreateSchema is idempotent (uses IF NOT EXISTS) and seeds the single
election_state row so the election always starts in RegisteringVoters.

# Compatibility

The schema runs unchanged on SQLite (modernc.org/sqlite) and PostgreSQL
(lib/pq). Positions and sequence numbers are assigned by the application
(MAX+1 inside the operation's transaction) rather than by AUTOINCREMENT or
SERIAL, which differ between the two engines.
*/
package db
