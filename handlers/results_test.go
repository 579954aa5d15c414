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

func TestGetWinner(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewResultsHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SeedProposal(t, conn, "A", 1)
	testutil.SeedProposal(t, conn, "B", 5)
	testutil.SeedProposal(t, conn, "C", 3)

	// Results sealed until the tally phase
	w := httptest.NewRecorder()
	handler.GetWinner(w, testutil.MakeRequest("GET", "/election/winner", nil, testutil.VoterHeaders("alice")))
	testutil.AssertStatus(t, w, http.StatusConflict)

	testutil.SetPhase(t, conn, models.VotesTallied)

	w = httptest.NewRecorder()
	handler.GetWinner(w, testutil.MakeRequest("GET", "/election/winner", nil, testutil.VoterHeaders("alice")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.WinnerResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Description != "B" || resp.ProposalID != 1 || resp.VoteCount != 5 {
		t.Errorf("Unexpected winner: %+v", resp)
	}
}

func TestGetWinnerTie(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewResultsHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SeedProposal(t, conn, "A", 3)
	testutil.SeedProposal(t, conn, "B", 5)
	testutil.SeedProposal(t, conn, "C", 5)
	testutil.SetPhase(t, conn, models.VotesTallied)

	w := httptest.NewRecorder()
	handler.GetWinner(w, testutil.MakeRequest("GET", "/election/winner", nil, testutil.VoterHeaders("alice")))
	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message == "" {
		t.Error("Expected a tie message in the error response")
	}
}

func TestListVoters(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewResultsHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SeedVoter(t, conn, "bob")
	testutil.SeedVoter(t, conn, "carol")

	w := httptest.NewRecorder()
	handler.ListVoters(w, testutil.MakeRequest("GET", "/election/voters", nil, testutil.VoterHeaders("bob")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VoterListResponse
	testutil.AssertJSON(t, w, &resp)
	want := []string{"alice", "bob", "carol"}
	if len(resp.Addresses) != len(want) {
		t.Fatalf("Expected %d addresses, got %d", len(want), len(resp.Addresses))
	}
	for i, addr := range want {
		if resp.Addresses[i] != addr {
			t.Errorf("Roster position %d: expected %s, got %s", i, addr, resp.Addresses[i])
		}
	}
}

func TestGetVoter(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewResultsHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")

	req := testutil.MakeRequest("GET", "/election/voters/alice", nil, testutil.VoterHeaders("alice"))
	req.SetPathValue("address", "alice")
	w := httptest.NewRecorder()
	handler.GetVoter(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voter models.Voter
	testutil.AssertJSON(t, w, &voter)
	if voter.Address != "alice" || !voter.IsRegistered || voter.HasVoted {
		t.Errorf("Unexpected voter record: %+v", voter)
	}

	// Zero address in the path
	req = testutil.MakeRequest("GET", "/election/voters/0x0000", nil, testutil.VoterHeaders("alice"))
	req.SetPathValue("address", "0x0000")
	w = httptest.NewRecorder()
	handler.GetVoter(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Unknown address yields the default record, not an error
	req = testutil.MakeRequest("GET", "/election/voters/nobody", nil, testutil.VoterHeaders("alice"))
	req.SetPathValue("address", "nobody")
	w = httptest.NewRecorder()
	handler.GetVoter(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &voter)
	if voter.IsRegistered {
		t.Error("Unknown address must not appear registered")
	}
}

func TestGetSummary(t *testing.T) {
	eng, conn, cfg := setupHandlers(t)
	handler := NewResultsHandler(eng, cfg)

	testutil.SeedVoter(t, conn, "alice")
	testutil.SeedProposal(t, conn, "A", 2)

	// Seed one event so last_activity is populated
	if err := eng.RegisterVoter("bob"); err != nil {
		t.Fatalf("RegisterVoter failed: %v", err)
	}

	w := httptest.NewRecorder()
	handler.GetSummary(w, testutil.MakeRequest("GET", "/election/summary", nil, testutil.VoterHeaders("alice")))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SummaryResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.RegisteredVoters != 2 || resp.Proposals != 1 || resp.VotesCast != 2 {
		t.Errorf("Unexpected summary: %+v", resp)
	}
	if resp.LastActivity == "" {
		t.Error("Expected humanized last_activity")
	}
}

func TestGetEvents(t *testing.T) {
	eng, _, cfg := setupHandlers(t)
	handler := NewResultsHandler(eng, cfg)

	if err := eng.RegisterVoter("alice"); err != nil {
		t.Fatalf("RegisterVoter failed: %v", err)
	}
	if _, err := eng.SetStatus(models.ProposalsRegistrationStarted); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	// Open to observers, no identity required
	w := httptest.NewRecorder()
	handler.GetEvents(w, testutil.MakeRequest("GET", "/election/events", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var events []models.Event
	testutil.AssertJSON(t, w, &events)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Kind != models.EventVoterRegistered || events[1].Kind != models.EventWorkflowStatusChange {
		t.Errorf("Unexpected event kinds: %s, %s", events[0].Kind, events[1].Kind)
	}

	// Limit caps the result
	w = httptest.NewRecorder()
	handler.GetEvents(w, testutil.MakeRequest("GET", "/election/events?limit=1", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &events)
	if len(events) != 1 {
		t.Errorf("Expected 1 event with limit, got %d", len(events))
	}

	// Bad limit
	w = httptest.NewRecorder()
	handler.GetEvents(w, testutil.MakeRequest("GET", "/election/events?limit=-3", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
