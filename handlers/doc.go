// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the rollcall API.

# Handler Types

Each handler is a struct with engine and config dependencies:

  - AdminHandler: workflow phase, voter registration, resets
  - ProposalHandler: proposal submission and listing
  - VotingHandler: vote casting
  - ResultsHandler: winner, roster, voter lookup, summary, events

Handlers are created via constructor functions that accept *election.Engine
and Config:

	adminHandler := handlers.NewAdminHandler(eng, cfg)

# Identity

Two headers carry caller identity:

  - X-Admin-Key: the administrator key (HMAC over the configured salt);
    required by status, registration, and reset operations
  - X-Voter-Address: the opaque voter address issued by the execution
    environment; required by proposal, voting, and read operations

# Workflow

The election moves through six phases. The administrator sets phases
freely (PUT /election/status validates the value, never the order), and
the behavioral operations enforce their own phase gates:

	POST /election/voters     → RegisteringVoters only
	POST /election/proposals  → ProposalsRegistrationStarted only
	POST /election/votes      → VotingSessionStarted only
	GET  /election/winner     → VotesTallied only

# Error Mapping

Core errors map to HTTP codes in errors.go: InvalidArgument → 400,
unregistered caller → 403, and WrongPhase / Conflict / NoProposals /
TieDetected → 409. A missing or wrong identity header is 401.
*/
package handlers
