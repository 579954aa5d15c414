// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/rollcall/cliparse"
	"github.com/danielhkuo/rollcall/election"
	"github.com/danielhkuo/rollcall/handlers"
	"github.com/danielhkuo/rollcall/middleware"
)

func NewRouter(eng *election.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(eng, cfg)
	proposalHandler := handlers.NewProposalHandler(eng, cfg)
	votingHandler := handlers.NewVotingHandler(eng, cfg)
	resultsHandler := handlers.NewResultsHandler(eng, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Workflow and whitelist management (admin operations)
	mux.HandleFunc("GET /election/status", middleware.WithLogging(adminHandler.GetStatus))
	mux.HandleFunc("PUT /election/status", middleware.WithLogging(adminHandler.SetStatus))
	mux.HandleFunc("POST /election/voters", middleware.WithLogging(adminHandler.RegisterVoter))
	mux.HandleFunc("POST /election/reset/voting-session", middleware.WithLogging(adminHandler.ResetVotingSession))
	mux.HandleFunc("POST /election/reset", middleware.WithLogging(adminHandler.ResetElection))

	// Proposal and voting operations (registered voters)
	mux.HandleFunc("POST /election/proposals", middleware.WithLogging(proposalHandler.Submit))
	mux.HandleFunc("GET /election/proposals", middleware.WithLogging(proposalHandler.List))
	mux.HandleFunc("POST /election/votes", middleware.WithLogging(votingHandler.CastVote))

	// Results and read accessors (registered voters)
	mux.HandleFunc("GET /election/winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /election/voters", middleware.WithLogging(resultsHandler.ListVoters))
	mux.HandleFunc("GET /election/voters/{address}", middleware.WithLogging(resultsHandler.GetVoter))
	mux.HandleFunc("GET /election/summary", middleware.WithLogging(resultsHandler.GetSummary))

	// Notification log (observers)
	mux.HandleFunc("GET /election/events", middleware.WithLogging(resultsHandler.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rollcall API v1"))
	})

	return mux
}
