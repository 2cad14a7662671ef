// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAdminDisabled   = errors.New("admin access disabled")
	ErrInvalidToken    = errors.New("invalid token format")
)

// sessionKeyBytes is the entropy of a draft session key (192 bits)
const sessionKeyBytes = 24

// GenerateSessionKey creates a random secure key for a wizard session.
// Whoever holds the key can read and edit the draft.
func GenerateSessionKey() (string, error) {
	b := make([]byte, sessionKeyBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateSessionKey checks the shape of a key taken from a URL
func ValidateSessionKey(key string) error {
	if key == "" || len(key) > 64 {
		return ErrInvalidToken
	}
	if _, err := base64.RawURLEncoding.DecodeString(key); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// ValidateAdminKey compares the provided key with the configured one in
// constant time. An empty configured key disables admin access.
func ValidateAdminKey(provided, configured string) error {
	if configured == "" {
		return ErrAdminDisabled
	}
	if !hmac.Equal([]byte(provided), []byte(configured)) {
		return ErrInvalidAdminKey
	}
	return nil
}
