// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrZeroAddress     = errors.New("zero address")
)

// adminKeySubject is the fixed HMAC input: there is exactly one election,
// so the key is derived from the salt alone.
const adminKeySubject = "election"

// GenerateAdminKey creates the HMAC-based administrator key.
// This is deterministic and verifiable.
func GenerateAdminKey(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(adminKeySubject))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid
func ValidateAdminKey(adminKey, salt string) error {
	expected := GenerateAdminKey(salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// NormalizeAddress canonicalizes an externally-issued voter address:
// lowercased, whitespace trimmed, optional 0x prefix removed. The address
// itself is opaque; the only value rejected is the null/zero address
// (empty, or hex consisting entirely of zeros).
func NormalizeAddress(addr string) (string, error) {
	a := strings.ToLower(strings.TrimSpace(addr))
	a = strings.TrimPrefix(a, "0x")
	if a == "" {
		return "", ErrZeroAddress
	}
	if strings.Trim(a, "0") == "" {
		return "", ErrZeroAddress
	}
	return a, nil
}
