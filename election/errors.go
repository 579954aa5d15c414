// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Sentinel errors for the election core. Handlers map these to HTTP status
// codes with errors.Is; specific failures wrap them with detail.
var (
	// ErrUnauthorized: caller is not a registered voter.
	ErrUnauthorized = errors.New("caller is not a registered voter")

	// ErrWrongPhase: the workflow phase does not match the operation's
	// required phase.
	ErrWrongPhase = errors.New("operation not allowed in current phase")

	// ErrInvalidArgument: zero address, empty description, or an
	// out-of-range proposal id.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict: duplicate registration, duplicate proposal description,
	// or a second vote from the same voter.
	ErrConflict = errors.New("conflict")

	// ErrNoProposals: the operation needs at least one proposal.
	ErrNoProposals = errors.New("no proposals registered")

	// ErrTieDetected: two or more proposals share the maximum vote count.
	// No winner is reported; the election must be reset before retrying.
	ErrTieDetected = errors.New("tie between top proposals")
)
