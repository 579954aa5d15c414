// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the rollcall API server.

Rollcall is a single-election voting service for a small, trusted group:
an administrator whitelists voter addresses, registered voters submit
proposals and cast one vote each, and the winner is resolved by simple
majority with explicit tie detection.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=rollcall.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3319 -d rollcall.db --admin-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite path or postgres connection string
  - ADMIN_KEY_SALT (--admin-salt): secret for the admin key HMAC

Optional settings:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite (default) or postgres

# Architecture

The server uses a handler-based architecture with dependency injection:

  - election: the core engine (phases, whitelist, proposals, tallying)
  - handlers: HTTP request handlers (admin, proposals, voting, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: admin key validation, address normalization
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
