// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rollcall/cliparse"
	"github.com/danielhkuo/rollcall/election"
	"github.com/danielhkuo/rollcall/middleware"
	"github.com/danielhkuo/rollcall/models"
)

type ProposalHandler struct {
	eng *election.Engine
	cfg cliparse.Config
}

func NewProposalHandler(eng *election.Engine, cfg cliparse.Config) *ProposalHandler {
	return &ProposalHandler{eng: eng, cfg: cfg}
}

// Submit handles POST /election/proposals
func (h *ProposalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	var req models.SubmitProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.eng.SubmitProposal(caller, req.Description)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	slog.Info("proposal registered", "proposal_id", id, "submitter", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitProposalResponse{
		ProposalID: id,
	})
}

// List handles GET /election/proposals
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := voterAddress(w, r)
	if !ok {
		return
	}

	proposals, err := h.eng.Proposals(caller)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposals)
}
