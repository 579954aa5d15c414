// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/rollcall/auth"
	"github.com/danielhkuo/rollcall/cliparse"
	"github.com/danielhkuo/rollcall/election"
	"github.com/danielhkuo/rollcall/middleware"
	"github.com/danielhkuo/rollcall/models"
)

type ResultsHandler struct {
	eng *election.Engine
	cfg cliparse.Config
}

func NewResultsHandler(eng *election.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{eng: eng, cfg: cfg}
}

// GetWinner handles GET /election/winner
// Only meaningful in VotesTallied; a tie or an empty proposal list yields
// 409 with no winner reported.
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	winner, err := h.eng.Winner(caller)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		ProposalID:  winner.ID,
		Description: winner.Description,
		VoteCount:   winner.VoteCount,
	})
}

// ListVoters handles GET /election/voters
// Returns the roster in registration order. A voting-session reset leaves
// the roster in place; only a full reset clears it.
func (h *ResultsHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	addresses, err := h.eng.RegisteredAddresses(caller)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterListResponse{
		Addresses: addresses,
	})
}

// GetVoter handles GET /election/voters/{address}
func (h *ResultsHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	addr, err := auth.NormalizeAddress(r.PathValue("address"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a non-zero identifier")
		return
	}

	voter, err := h.eng.Participant(caller, addr)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}

// GetSummary handles GET /election/summary
func (h *ResultsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	s, err := h.eng.Summarize(caller)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	resp := models.SummaryResponse{
		Status:           s.Status,
		StatusName:       s.Status.String(),
		RegisteredVoters: s.RegisteredVoters,
		Proposals:        s.Proposals,
		VotesCast:        s.VotesCast,
	}
	if s.LastEventAt != nil {
		resp.LastActivity = humanize.Time(*s.LastEventAt)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetEvents handles GET /election/events
// Observer view of the append-only notification log; accepts ?limit=N.
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	events, err := h.eng.Events(limit)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, events)
}
