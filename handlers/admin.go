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

type AdminHandler struct {
	eng *election.Engine
	cfg cliparse.Config
}

func NewAdminHandler(eng *election.Engine, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{eng: eng, cfg: cfg}
}

// requireAdmin validates the X-Admin-Key header. Returns false after
// writing the error response if the key is missing or wrong.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// GetStatus handles GET /election/status
func (h *AdminHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	status, err := h.eng.Status()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:     status,
		StatusName: status.String(),
	})
}

// SetStatus handles PUT /election/status
// The new phase is applied unconditionally; phase-gated operations enforce
// their own requirements, not the setter.
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.SetStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	prev, err := h.eng.SetStatus(req.Status)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	slog.Info("workflow status changed", "previous", prev.String(), "new", req.Status.String())

	middleware.JSONResponse(w, http.StatusOK, models.SetStatusResponse{
		PreviousStatus: prev,
		Status:         req.Status,
		StatusName:     req.Status.String(),
	})
}

// RegisterVoter handles POST /election/voters
func (h *AdminHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	addr, err := auth.NormalizeAddress(req.Address)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a non-zero identifier")
		return
	}

	if err := h.eng.RegisterVoter(addr); err != nil {
		writeElectionError(w, err)
		return
	}

	slog.Info("voter registered", "address", addr)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		Address: addr,
	})
}

// ResetVotingSession handles POST /election/reset/voting-session
// Re-registers every roster address, clears vote flags, zeroes all vote
// counts, and moves the election to VotingSessionStarted. Allowed from any
// phase.
func (h *AdminHandler) ResetVotingSession(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := h.eng.ResetVotingSession(); err != nil {
		writeElectionError(w, err)
		return
	}

	slog.Info("voting session reset")

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:     models.VotingSessionStarted,
		StatusName: models.VotingSessionStarted.String(),
	})
}

// ResetElection handles POST /election/reset
// Unregisters every roster address, clears the proposal list and roster,
// and moves the election back to RegisteringVoters. Allowed from any phase
// and idempotent.
func (h *AdminHandler) ResetElection(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := h.eng.ResetElection(); err != nil {
		writeElectionError(w, err)
		return
	}

	slog.Info("election reset")

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		Status:     models.RegisteringVoters,
		StatusName: models.RegisteringVoters.String(),
	})
}
