// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the rollcall API.

Routes use Go 1.22+ method-based routing on the standard ServeMux:

	GET  /health                             → liveness check
	GET  /election/status                    → current workflow phase (admin)
	PUT  /election/status                    → set workflow phase (admin)
	POST /election/voters                    → register a voter (admin)
	POST /election/proposals                 → submit a proposal (voter)
	GET  /election/proposals                 → list proposals (voter)
	POST /election/votes                     → cast a vote (voter)
	GET  /election/winner                    → winning proposal (voter)
	GET  /election/voters                    → roster (voter)
	GET  /election/voters/{address}          → voter record (voter)
	GET  /election/summary                   → counts and last activity (voter)
	GET  /election/events                    → notification log (open)
	POST /election/reset/voting-session      → rewind to a fresh session (admin)
	POST /election/reset                     → full reset (admin)

All routes are wrapped with the logging middleware.
*/
package router
