// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"
)

func TestGenerateAdminKey(t *testing.T) {
	key1 := GenerateAdminKey("salt-a")
	key2 := GenerateAdminKey("salt-a")
	key3 := GenerateAdminKey("salt-b")

	if key1 == "" {
		t.Fatal("Expected non-empty admin key")
	}
	if key1 != key2 {
		t.Error("Admin key must be deterministic for the same salt")
	}
	if key1 == key3 {
		t.Error("Different salts must produce different keys")
	}
	for _, c := range key1 {
		if c == '=' {
			t.Error("Admin key must not contain base64 padding")
		}
	}
}

func TestValidateAdminKey(t *testing.T) {
	salt := "test-salt"
	key := GenerateAdminKey(salt)

	if err := ValidateAdminKey(key, salt); err != nil {
		t.Errorf("Valid key rejected: %v", err)
	}
	if err := ValidateAdminKey(key, "other-salt"); !errors.Is(err, ErrInvalidAdminKey) {
		t.Errorf("Expected ErrInvalidAdminKey, got %v", err)
	}
	if err := ValidateAdminKey("", salt); !errors.Is(err, ErrInvalidAdminKey) {
		t.Errorf("Expected ErrInvalidAdminKey for empty key, got %v", err)
	}
	if err := ValidateAdminKey(key+"x", salt); !errors.Is(err, ErrInvalidAdminKey) {
		t.Errorf("Expected ErrInvalidAdminKey for tampered key, got %v", err)
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain address", input: "abc123", want: "abc123"},
		{name: "uppercase folded", input: "ABC123", want: "abc123"},
		{name: "0x prefix stripped", input: "0xAbC123", want: "abc123"},
		{name: "whitespace trimmed", input: "  abc123\n", want: "abc123"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "bare 0x", input: "0x", wantErr: true},
		{name: "zero address", input: "0x0000000000000000000000000000000000000000", wantErr: true},
		{name: "short zero", input: "000", wantErr: true},
		{name: "zero-ish but nonzero", input: "0001", want: "0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrZeroAddress) {
					t.Fatalf("Expected ErrZeroAddress, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeAddress(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
