// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateSessionKey(t *testing.T) {
	key, err := GenerateSessionKey()
	if err != nil {
		t.Fatalf("GenerateSessionKey() error = %v", err)
	}

	// Should be URL-safe (no padding)
	if strings.ContainsAny(key, "=+/") {
		t.Errorf("GenerateSessionKey() is not URL-safe: %s", key)
	}

	// 24 bytes encode to 32 characters
	if len(key) != 32 {
		t.Errorf("GenerateSessionKey() length = %d, want 32", len(key))
	}

	if err := ValidateSessionKey(key); err != nil {
		t.Errorf("generated key failed validation: %v", err)
	}

	// Test randomness - should not produce duplicates
	keys := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateSessionKey()
		if err != nil {
			t.Fatalf("GenerateSessionKey() error on iteration %d: %v", i, err)
		}
		if keys[key] {
			t.Errorf("GenerateSessionKey() produced duplicate key: %s", key)
		}
		keys[key] = true
	}
}

func TestValidateSessionKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "abcDEF123-_x", false},
		{"empty", "", true},
		{"padding", "abcd==", true},
		{"slash", "ab/cd", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		provided   string
		configured string
		want       error
	}{
		{"match", "secret", "secret", nil},
		{"mismatch", "guess", "secret", ErrInvalidAdminKey},
		{"empty provided", "", "secret", ErrInvalidAdminKey},
		{"disabled", "anything", "", ErrAdminDisabled},
		{"disabled with empty", "", "", ErrAdminDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.provided, tt.configured)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkGenerateSessionKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateSessionKey()
	}
}
