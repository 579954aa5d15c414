// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rollcall/auth"
	"github.com/danielhkuo/rollcall/cliparse"
	"github.com/danielhkuo/rollcall/election"
	"github.com/danielhkuo/rollcall/middleware"
	"github.com/danielhkuo/rollcall/models"
)

type VotingHandler struct {
	eng *election.Engine
	cfg cliparse.Config
}

func NewVotingHandler(eng *election.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{eng: eng, cfg: cfg}
}

// voterAddress extracts and normalizes the caller identity from the
// X-Voter-Address header. Returns ok=false after writing the error
// response when the header is missing or the address is the zero value.
func voterAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := r.Header.Get("X-Voter-Address")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Address header required")
		return "", false
	}
	addr, err := auth.NormalizeAddress(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a non-zero identifier")
		return "", false
	}
	return addr, true
}

// CastVote handles POST /election/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.eng.CastVote(caller, req.ProposalID); err != nil {
		writeElectionError(w, err)
		return
	}

	slog.Info("vote cast", "voter", caller, "proposal_id", req.ProposalID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		ProposalID: req.ProposalID,
		Voter:      caller,
	})
}
