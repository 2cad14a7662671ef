// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session key generation and the admin key check.

# Session Keys

Each wizard session is addressed by a random 24-byte (192-bit) key:

	key, err := auth.GenerateSessionKey()

Keys are URL-safe base64 without padding and appear in draft URLs
(/drafts/{key}). ValidateSessionKey rejects anything that could not have been
generated here before it reaches the draft cache.

# Admin Key

The admin dashboard is gated by a single configured key sent in the
X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

Comparison is constant-time. An empty configured key returns
ErrAdminDisabled. This is a shared secret, not a user model.
*/
package auth
