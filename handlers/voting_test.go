// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/rollcall/models"
	"github.com/danielhkuo/rollcall/testutil"
)

func TestSubmitProposal(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewProposalHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SetPhase(t, conn, models.ProposalsRegistrationStarted)

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.SubmitProposalResponse)
	}{
		{
			name:           "valid proposal",
			body:           models.SubmitProposalRequest{Description: "Build a fountain"},
			headers:        testutil.VoterHeaders("alice"),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.SubmitProposalResponse) {
				if resp.ProposalID != 0 {
					t.Errorf("Expected proposal id 0, got %d", resp.ProposalID)
				}
			},
		},
		{
			name:           "second proposal gets next id",
			body:           models.SubmitProposalRequest{Description: "Plant trees"},
			headers:        testutil.VoterHeaders("alice"),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.SubmitProposalResponse) {
				if resp.ProposalID != 1 {
					t.Errorf("Expected proposal id 1, got %d", resp.ProposalID)
				}
			},
		},
		{
			name:           "duplicate description",
			body:           models.SubmitProposalRequest{Description: "Build a fountain"},
			headers:        testutil.VoterHeaders("alice"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty description",
			body:           models.SubmitProposalRequest{},
			headers:        testutil.VoterHeaders("alice"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unregistered caller",
			body:           models.SubmitProposalRequest{Description: "Mallory's plan"},
			headers:        testutil.VoterHeaders("mallory"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing voter header",
			body:           models.SubmitProposalRequest{Description: "Anonymous plan"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Submit(w, testutil.MakeRequest("POST", "/election/proposals", tt.body, tt.headers))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil && w.Code == http.StatusCreated {
				var resp models.SubmitProposalResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestListProposals(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewProposalHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SeedProposal(t, conn, "A", 2)
	testutil.SeedProposal(t, conn, "B", 0)

	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/election/proposals", nil, testutil.VoterHeaders("alice")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var proposals []models.Proposal
	testutil.AssertJSON(t, w, &proposals)
	if len(proposals) != 2 || proposals[0].Description != "A" || proposals[0].VoteCount != 2 {
		t.Errorf("Unexpected proposals: %+v", proposals)
	}

	// Unregistered caller
	w = httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/election/proposals", nil, testutil.VoterHeaders("mallory")))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestCastVote(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewVotingHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SeedVoter(t, conn, "bob")
	testutil.SeedProposal(t, conn, "A", 0)
	testutil.SeedProposal(t, conn, "B", 0)
	testutil.SetPhase(t, conn, models.VotingSessionStarted)

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "valid vote",
			body:           models.CastVoteRequest{ProposalID: 1},
			headers:        testutil.VoterHeaders("alice"),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "double vote",
			body:           models.CastVoteRequest{ProposalID: 0},
			headers:        testutil.VoterHeaders("alice"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "out of range",
			body:           models.CastVoteRequest{ProposalID: 7},
			headers:        testutil.VoterHeaders("bob"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unregistered caller",
			body:           models.CastVoteRequest{ProposalID: 0},
			headers:        testutil.VoterHeaders("mallory"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing voter header",
			body:           models.CastVoteRequest{ProposalID: 0},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "zero address",
			body:           models.CastVoteRequest{ProposalID: 0},
			headers:        testutil.VoterHeaders("0x0000"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CastVote(w, testutil.MakeRequest("POST", "/election/votes", tt.body, tt.headers))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Wrong phase after the session ends
	testutil.SetPhase(t, conn, models.VotingSessionEnded)
	w := httptest.NewRecorder()
	handler.CastVote(w, testutil.MakeRequest("POST", "/election/votes",
		models.CastVoteRequest{ProposalID: 0}, testutil.VoterHeaders("bob")))
	testutil.AssertStatus(t, w, http.StatusConflict)
}
