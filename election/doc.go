// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the single-election voting core: the workflow
phase register, the voter whitelist and roster, proposal submission, vote
tallying with tie detection, and the administrative resets.

# Engine

Engine wraps a *sql.DB. Every public method takes one mutex and runs one
database transaction, which gives each operation exclusive, all-or-nothing
semantics: a failed call leaves no partial state behind.

	eng := election.NewEngine(db)
	prev, err := eng.SetStatus(models.VotingSessionStarted)
	err = eng.CastVote(voterAddr, 2)
	winner, err := eng.Winner(voterAddr)

# Phase Gating

The administrator may set any phase at any time; SetStatus performs no
transition-order validation. Instead each behavioral operation declares the
phase it requires and fails with ErrWrongPhase elsewhere:

	RegisterVoter   → RegisteringVoters
	SubmitProposal  → ProposalsRegistrationStarted
	CastVote        → VotingSessionStarted
	Winner          → VotesTallied

The resets and the read accessors have no phase requirement.

# Winner Resolution

Winner scans proposals from id 0 and replaces the leader only on a strictly
greater count, so ties favor the lowest id. A second scan fails with
ErrTieDetected when any other proposal matches the leader's count - even at
zero votes, so an election nobody voted in never reports a winner.

# Notification Log

Each mutating operation appends a typed event (VoterRegistered,
WorkflowStatusChange, ProposalRegistered, Voted) to the event table within
its own transaction. The log is append-only and never read back by the
core; Events exposes it to observers.

# Errors

Sentinel errors (ErrUnauthorized, ErrWrongPhase, ErrInvalidArgument,
ErrConflict, ErrNoProposals, ErrTieDetected) are wrapped with detail and
matched by callers with errors.Is.
*/
package election
