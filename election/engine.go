// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/rollcall/models"
)

// Engine is the election core: workflow phase register, voter whitelist,
// proposal list, vote records, and tallying. Every public method takes the
// engine mutex and runs inside a single database transaction, so each
// operation is exclusive and all-or-nothing.
type Engine struct {
	mu sync.Mutex
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// Status returns the current workflow phase.
func (e *Engine) Status() (models.WorkflowStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var status models.WorkflowStatus
	err := e.db.QueryRow(`SELECT status FROM election_state WHERE id = 1`).Scan(&status)
	if err != nil {
		return 0, fmt.Errorf("failed to read election state: %w", err)
	}
	return status, nil
}

// SetStatus unconditionally overwrites the workflow phase and emits a
// WorkflowStatusChange event. There is no transition-order validation:
// phase values are data, and the behavioral operations carry their own
// phase gates. Returns the previous phase.
func (e *Engine) SetStatus(newStatus models.WorkflowStatus) (models.WorkflowStatus, error) {
	if !newStatus.Valid() {
		return 0, fmt.Errorf("%w: unknown status %d", ErrInvalidArgument, newStatus)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prev, err := currentStatus(tx)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE election_state SET status = $1 WHERE id = 1`, newStatus); err != nil {
		return 0, fmt.Errorf("failed to update election state: %w", err)
	}

	if err := appendEvent(tx, models.EventWorkflowStatusChange, map[string]any{
		"previous_status": prev.String(),
		"new_status":      newStatus.String(),
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return prev, nil
}

// RegisterVoter whitelists an address. Requires phase RegisteringVoters.
// The address must not already be registered; re-registering an address
// that a full reset left unregistered is allowed and reuses its record.
func (e *Engine) RegisterVoter(addr string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requirePhase(tx, models.RegisteringVoters); err != nil {
		return err
	}

	var registered bool
	err = tx.QueryRow(`SELECT is_registered FROM voter WHERE address = $1`, addr).Scan(&registered)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to query voter: %w", err)
	}
	if registered {
		return fmt.Errorf("%w: voter %s already registered", ErrConflict, addr)
	}

	_, err = tx.Exec(`
		INSERT INTO voter (address, is_registered, has_voted, voted_proposal_id)
		VALUES ($1, TRUE, FALSE, 0)
		ON CONFLICT (address) DO UPDATE
		SET is_registered = TRUE, has_voted = FALSE, voted_proposal_id = 0
	`, addr)
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}

	// Roster position is assigned in the transaction rather than by the
	// database, so the same schema runs on sqlite and postgres.
	var position int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position), 0) + 1 FROM roster`).Scan(&position); err != nil {
		return fmt.Errorf("failed to compute roster position: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO roster (position, address) VALUES ($1, $2)`, position, addr); err != nil {
		return fmt.Errorf("failed to append roster entry: %w", err)
	}

	if err := appendEvent(tx, models.EventVoterRegistered, map[string]any{
		"address": addr,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SubmitProposal appends a proposal for a registered voter. Requires phase
// ProposalsRegistrationStarted. The description must be non-empty and must
// not exactly match any existing proposal. Returns the new proposal id.
func (e *Engine) SubmitProposal(caller, description string) (int, error) {
	if description == "" {
		return 0, fmt.Errorf("%w: empty proposal description", ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return 0, err
	}
	if err := requirePhase(tx, models.ProposalsRegistrationStarted); err != nil {
		return 0, err
	}

	// Duplicate check scans the entire list: the 5th copy of the 1st
	// proposal is rejected the same as the 2nd.
	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM proposal WHERE description = $1)`, description).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check for duplicate proposal: %w", err)
	}
	if exists {
		return 0, fmt.Errorf("%w: proposal description already registered", ErrConflict)
	}

	// Dense 0-based ids: the next id is the current list length.
	var id int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM proposal`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to count proposals: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO proposal (id, description, vote_count)
		VALUES ($1, $2, 0)
	`, id, description); err != nil {
		return 0, fmt.Errorf("failed to insert proposal: %w", err)
	}

	if err := appendEvent(tx, models.EventProposalRegistered, map[string]any{
		"proposal_id": id,
	}); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// CastVote records a vote from a registered voter. Requires phase
// VotingSessionStarted and at least one proposal. A voter may vote once
// per session; the vote record, the proposal count, and the Voted event
// commit together or not at all.
func (e *Engine) CastVote(caller string, proposalID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return err
	}
	if err := requirePhase(tx, models.VotingSessionStarted); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM proposal`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count proposals: %w", err)
	}
	if count == 0 {
		return ErrNoProposals
	}
	if proposalID < 0 || proposalID >= count {
		return fmt.Errorf("%w: proposal id %d out of range [0, %d)", ErrInvalidArgument, proposalID, count)
	}

	var hasVoted bool
	err = tx.QueryRow(`SELECT has_voted FROM voter WHERE address = $1`, caller).Scan(&hasVoted)
	if err != nil {
		return fmt.Errorf("failed to query voter: %w", err)
	}
	if hasVoted {
		return fmt.Errorf("%w: voter %s already voted", ErrConflict, caller)
	}

	if _, err := tx.Exec(`
		UPDATE voter SET has_voted = TRUE, voted_proposal_id = $1 WHERE address = $2
	`, proposalID, caller); err != nil {
		return fmt.Errorf("failed to update voter: %w", err)
	}
	if _, err := tx.Exec(`
		UPDATE proposal SET vote_count = vote_count + 1 WHERE id = $1
	`, proposalID); err != nil {
		return fmt.Errorf("failed to increment vote count: %w", err)
	}

	if err := appendEvent(tx, models.EventVoted, map[string]any{
		"voter":       caller,
		"proposal_id": proposalID,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Winner resolves the winning proposal. Requires phase VotesTallied and at
// least one proposal. The leader scan starts at id 0 and only a strictly
// greater count replaces the leader, so ties favor the lowest id; a second
// scan then fails with ErrTieDetected if any other proposal matches the
// leader's count. The tie check runs even when the leading count is zero,
// so an election nobody voted in is not silently reported as a win.
func (e *Engine) Winner(caller string) (models.Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return models.Proposal{}, err
	}
	if err := requirePhase(tx, models.VotesTallied); err != nil {
		return models.Proposal{}, err
	}

	proposals, err := listProposals(tx)
	if err != nil {
		return models.Proposal{}, err
	}
	if len(proposals) == 0 {
		return models.Proposal{}, ErrNoProposals
	}

	winning := 0
	for i, p := range proposals {
		if p.VoteCount > proposals[winning].VoteCount {
			winning = i
		}
	}
	for i, p := range proposals {
		if i != winning && p.VoteCount == proposals[winning].VoteCount {
			return models.Proposal{}, fmt.Errorf("%w: proposals %d and %d both have %d votes",
				ErrTieDetected, winning, i, p.VoteCount)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Proposal{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return proposals[winning], nil
}

// ResetVotingSession rewinds the election to a fresh voting session. Every
// roster address is rewritten to a registered, not-yet-voted record (its
// registration is forcibly restored, not merely preserved) and every vote
// count drops to zero. The emitted WorkflowStatusChange always announces
// VotesTallied as the previous phase regardless of the actual one; this
// matches the announced behavior of the workflow and is deliberate.
// Callable from any phase.
func (e *Engine) ResetVotingSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE voter SET is_registered = TRUE, has_voted = FALSE, voted_proposal_id = 0
		WHERE address IN (SELECT address FROM roster)
	`); err != nil {
		return fmt.Errorf("failed to reset voter records: %w", err)
	}
	if _, err := tx.Exec(`UPDATE proposal SET vote_count = 0`); err != nil {
		return fmt.Errorf("failed to reset vote counts: %w", err)
	}

	if err := appendEvent(tx, models.EventWorkflowStatusChange, map[string]any{
		"previous_status": models.VotesTallied.String(),
		"new_status":      models.VotingSessionStarted.String(),
	}); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE election_state SET status = $1 WHERE id = 1`, models.VotingSessionStarted); err != nil {
		return fmt.Errorf("failed to update election state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ResetElection rewinds the election to an empty RegisteringVoters phase.
// Roster addresses are rewritten to the fully unregistered default (voter
// rows persist, reset rather than deleted), then the proposal list and the
// roster are cleared. Callable from any phase; idempotent.
func (e *Engine) ResetElection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prev, err := currentStatus(tx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`
		UPDATE voter SET is_registered = FALSE, has_voted = FALSE, voted_proposal_id = 0
		WHERE address IN (SELECT address FROM roster)
	`); err != nil {
		return fmt.Errorf("failed to reset voter records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM proposal`); err != nil {
		return fmt.Errorf("failed to clear proposals: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM roster`); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	if err := appendEvent(tx, models.EventWorkflowStatusChange, map[string]any{
		"previous_status": prev.String(),
		"new_status":      models.RegisteringVoters.String(),
	}); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE election_state SET status = $1 WHERE id = 1`, models.RegisteringVoters); err != nil {
		return fmt.Errorf("failed to update election state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Proposals lists all proposals in id order. Registered voters only.
func (e *Engine) Proposals(caller string) ([]models.Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return nil, err
	}
	proposals, err := listProposals(tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return proposals, nil
}

// RegisteredAddresses returns the roster in registration order. The roster
// survives a voting-session reset and is cleared only by a full reset.
// Registered voters only.
func (e *Engine) RegisteredAddresses(caller string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return nil, err
	}

	rows, err := tx.Query(`SELECT address FROM roster ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	addresses := []string{}
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		addresses = append(addresses, addr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return addresses, nil
}

// Participant returns the voter record for an address. Unknown addresses
// yield the default unregistered record, mirroring lookup in a mapping
// with defaults. Registered voters only.
func (e *Engine) Participant(caller, addr string) (models.Voter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return models.Voter{}, err
	}

	v := models.Voter{Address: addr}
	err = tx.QueryRow(`
		SELECT is_registered, has_voted, voted_proposal_id FROM voter WHERE address = $1
	`, addr).Scan(&v.IsRegistered, &v.HasVoted, &v.VotedProposalID)
	if err != nil && err != sql.ErrNoRows {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Voter{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return v, nil
}

// Summary is a convenience snapshot for dashboards: current phase, counts,
// and the time of the most recent event.
type Summary struct {
	Status           models.WorkflowStatus
	RegisteredVoters int
	Proposals        int
	VotesCast        int
	LastEventAt      *time.Time
}

// Summarize returns election counts. Registered voters only.
func (e *Engine) Summarize(caller string) (Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireVoter(tx, caller); err != nil {
		return Summary{}, err
	}

	var s Summary
	if s.Status, err = currentStatus(tx); err != nil {
		return Summary{}, err
	}
	if err := tx.QueryRow(`SELECT COUNT(*) FROM roster`).Scan(&s.RegisteredVoters); err != nil {
		return Summary{}, fmt.Errorf("failed to count roster: %w", err)
	}
	if err := tx.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(vote_count), 0) FROM proposal
	`).Scan(&s.Proposals, &s.VotesCast); err != nil {
		return Summary{}, fmt.Errorf("failed to count proposals: %w", err)
	}

	var last time.Time
	err = tx.QueryRow(`SELECT emitted_at FROM event ORDER BY seq DESC LIMIT 1`).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		return Summary{}, fmt.Errorf("failed to query last event: %w", err)
	}
	if err == nil {
		s.LastEventAt = &last
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return s, nil
}

// Transaction-scoped helpers

func currentStatus(tx *sql.Tx) (models.WorkflowStatus, error) {
	var status models.WorkflowStatus
	if err := tx.QueryRow(`SELECT status FROM election_state WHERE id = 1`).Scan(&status); err != nil {
		return 0, fmt.Errorf("failed to read election state: %w", err)
	}
	return status, nil
}

func requirePhase(tx *sql.Tx, want models.WorkflowStatus) error {
	current, err := currentStatus(tx)
	if err != nil {
		return err
	}
	if current != want {
		return fmt.Errorf("%w: requires %s, current phase is %s", ErrWrongPhase, want, current)
	}
	return nil
}

func requireVoter(tx *sql.Tx, addr string) error {
	var registered bool
	err := tx.QueryRow(`SELECT is_registered FROM voter WHERE address = $1`, addr).Scan(&registered)
	if err == sql.ErrNoRows {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("failed to query voter: %w", err)
	}
	if !registered {
		return ErrUnauthorized
	}
	return nil
}

func listProposals(tx *sql.Tx) ([]models.Proposal, error) {
	rows, err := tx.Query(`SELECT id, description, vote_count FROM proposal ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(&p.ID, &p.Description, &p.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate proposals: %w", err)
	}
	return proposals, nil
}
