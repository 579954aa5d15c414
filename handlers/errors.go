// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rollcall/election"
	"github.com/danielhkuo/rollcall/middleware"
)

// writeElectionError maps core errors to HTTP responses. Phase, conflict,
// no-proposal, and tie failures all surface as 409: the request was valid
// but the election state refuses it.
func writeElectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, election.ErrInvalidArgument):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, election.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, election.ErrWrongPhase),
		errors.Is(err, election.ErrConflict),
		errors.Is(err, election.ErrNoProposals),
		errors.Is(err, election.ErrTieDetected):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("election operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
