// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Settings

Required:

  - DATABASE_URL (-d): sqlite path/DSN or postgres connection string
  - ADMIN_KEY_SALT (--admin-salt): secret for the admin key HMAC

Optional:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

Flags take precedence over environment variables. A .env file is loaded
by main before parsing, so either source works in development.
*/
package cliparse
