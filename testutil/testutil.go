// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/rollcall/auth"
	"github.com/danielhkuo/rollcall/cliparse"
	"github.com/danielhkuo/rollcall/db"
	"github.com/danielhkuo/rollcall/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// A single connection keeps the :memory: database alive and shared for
// the whole test.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// AdminHeaders returns the headers for an administrator request
func AdminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		"X-Admin-Key": auth.GenerateAdminKey(cfg.AdminKeySalt),
	}
}

// VoterHeaders returns the headers for a voter request
func VoterHeaders(addr string) map[string]string {
	return map[string]string{
		"X-Voter-Address": addr,
	}
}

// SetPhase forces the workflow phase directly in the database
func SetPhase(t *testing.T, conn *sql.DB, status models.WorkflowStatus) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE election_state SET status = $1 WHERE id = 1`, status); err != nil {
		t.Fatalf("Failed to set phase: %v", err)
	}
}

// SeedVoter registers an address directly in the database, bypassing the
// engine, and appends it to the roster
func SeedVoter(t *testing.T, conn *sql.DB, addr string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO voter (address, is_registered, has_voted, voted_proposal_id)
		VALUES ($1, TRUE, FALSE, 0)
		ON CONFLICT (address) DO UPDATE
		SET is_registered = TRUE, has_voted = FALSE, voted_proposal_id = 0
	`, addr)
	if err != nil {
		t.Fatalf("Failed to seed voter: %v", err)
	}

	var position int
	if err := conn.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM roster`).Scan(&position); err != nil {
		t.Fatalf("Failed to compute roster position: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO roster (position, address) VALUES ($1, $2)`, position, addr); err != nil {
		t.Fatalf("Failed to seed roster entry: %v", err)
	}
}

// SeedProposal inserts a proposal with a preset vote count and returns its id
func SeedProposal(t *testing.T, conn *sql.DB, description string, voteCount int) int {
	t.Helper()

	var id int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM proposal`).Scan(&id); err != nil {
		t.Fatalf("Failed to count proposals: %v", err)
	}
	_, err := conn.Exec(`
		INSERT INTO proposal (id, description, vote_count)
		VALUES ($1, $2, $3)
	`, id, description, voteCount)
	if err != nil {
		t.Fatalf("Failed to seed proposal: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
