// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// WorkflowStatus is the single phase register gating every election
// operation. Values are ordered but the order is not enforced by the
// setter: the administrator may move the election to any phase.
type WorkflowStatus int

const (
	RegisteringVoters WorkflowStatus = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var statusNames = [...]string{
	"RegisteringVoters",
	"ProposalsRegistrationStarted",
	"ProposalsRegistrationEnded",
	"VotingSessionStarted",
	"VotingSessionEnded",
	"VotesTallied",
}

func (s WorkflowStatus) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return statusNames[s]
}

// Valid reports whether s is one of the six defined phases.
func (s WorkflowStatus) Valid() bool {
	return s >= RegisteringVoters && s <= VotesTallied
}

// Event kind constants
const (
	EventVoterRegistered      = "VoterRegistered"
	EventWorkflowStatusChange = "WorkflowStatusChange"
	EventProposalRegistered   = "ProposalRegistered"
	EventVoted                = "Voted"
)

// Request types

type SetStatusRequest struct {
	Status WorkflowStatus `json:"status"`
}

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

type SubmitProposalRequest struct {
	Description string `json:"description"`
}

type CastVoteRequest struct {
	ProposalID int `json:"proposal_id"`
}

// Response types

type StatusResponse struct {
	Status     WorkflowStatus `json:"status"`
	StatusName string         `json:"status_name"`
}

type SetStatusResponse struct {
	PreviousStatus WorkflowStatus `json:"previous_status"`
	Status         WorkflowStatus `json:"status"`
	StatusName     string         `json:"status_name"`
}

type RegisterVoterResponse struct {
	Address string `json:"address"`
}

type SubmitProposalResponse struct {
	ProposalID int `json:"proposal_id"`
}

type CastVoteResponse struct {
	ProposalID int    `json:"proposal_id"`
	Voter      string `json:"voter"`
}

type WinnerResponse struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

type VoterListResponse struct {
	Addresses []string `json:"addresses"`
}

type SummaryResponse struct {
	Status           WorkflowStatus `json:"status"`
	StatusName       string         `json:"status_name"`
	RegisteredVoters int            `json:"registered_voters"`
	Proposals        int            `json:"proposals"`
	VotesCast        int            `json:"votes_cast"`
	LastActivity     string         `json:"last_activity,omitempty"`
}

// Domain types

type Voter struct {
	Address         string `json:"address"`
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID int    `json:"voted_proposal_id"`
}

type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// Event is one entry of the append-only notification log. The core only
// ever inserts events; observers read them back via the events endpoint.
type Event struct {
	Seq       int            `json:"seq"`
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Payload   map[string]any `json:"payload"`
	EmittedAt time.Time      `json:"emitted_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
