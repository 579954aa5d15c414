// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/rollcall/models"
)

// appendEvent inserts a notification into the append-only log inside the
// caller's transaction, so the event commits or rolls back with the state
// change it announces. The core never reads events back for decisions.
func appendEvent(tx *sql.Tx, kind string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	// Sequence numbers are assigned in the transaction for the same
	// portability reason as roster positions.
	var seq int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq), 0) + 1 FROM event`).Scan(&seq); err != nil {
		return fmt.Errorf("failed to compute event sequence: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO event (seq, id, kind, payload, emitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, seq, uuid.NewString(), kind, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Events returns up to limit log entries in emission order. A limit of 0
// or less returns the whole log. Open to observers; the log carries no
// voter-private data beyond what the operations themselves expose.
func (e *Engine) Events(limit int) ([]models.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	query := `SELECT seq, id, kind, payload, emitted_at FROM event ORDER BY seq`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = e.db.Query(query+` LIMIT $1`, limit)
	} else {
		rows, err = e.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var ev models.Event
		var body string
		if err := rows.Scan(&ev.Seq, &ev.ID, &ev.Kind, &body, &ev.EmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &ev.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode event payload: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}
