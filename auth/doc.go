// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides administrator key validation and voter address
normalization.

# Admin Keys

The administrator key is an HMAC-SHA256 over a fixed subject, keyed by the
configured salt. It is deterministic: the operator derives it once from the
salt and presents it in the X-Admin-Key header.

	key := auth.GenerateAdminKey(cfg.AdminKeySalt)
	err := auth.ValidateAdminKey(presented, cfg.AdminKeySalt)

Validation uses constant-time comparison (hmac.Equal).

# Voter Addresses

Voter identity is issued by the execution environment and arrives in the
X-Voter-Address header. The service never mints or verifies identities; it
only canonicalizes them:

	addr, err := auth.NormalizeAddress(raw)

NormalizeAddress lowercases, trims, strips an optional 0x prefix, and
rejects the null/zero address with ErrZeroAddress.
*/
package auth
