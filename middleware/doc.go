// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

# Middleware

  - WithLogging: logs request start/completion with duration via slog
  - CORS: permissive cross-origin headers, handles OPTIONS preflight

# Helpers

  - JSONResponse: writes a JSON body with the given status code
  - ErrorResponse: writes a models.ErrorResponse
  - ParseJSONBody: decodes a JSON request body

The CORS allowlist of headers includes X-Admin-Key and X-Voter-Address,
the two identity headers the API accepts.
*/
package middleware
