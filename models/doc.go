// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SetStatusRequest: status
  - RegisterVoterRequest: address
  - SubmitProposalRequest: description
  - CastVoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - StatusResponse: status, status_name
  - SetStatusResponse: previous_status, status, status_name
  - RegisterVoterResponse: address
  - SubmitProposalResponse: proposal_id
  - CastVoteResponse: proposal_id, voter
  - WinnerResponse: proposal_id, description, vote_count
  - VoterListResponse: addresses
  - SummaryResponse: counts and last activity
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Voter: registration and vote record for one address
  - Proposal: description with running vote count
  - Event: one entry of the append-only notification log

# Workflow Phases

The election moves through six phases, in intended order:

	RegisteringVoters
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied

The order is intentional but not enforced: the administrator can set any
phase at any time. Phase checks gate the behavioral operations instead.

# Event Kinds

	EventVoterRegistered      = "VoterRegistered"
	EventWorkflowStatusChange = "WorkflowStatusChange"
	EventProposalRegistered   = "ProposalRegistered"
	EventVoted                = "Voted"
*/
package models
