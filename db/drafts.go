// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DraftCache is a key-value store for in-progress wizard sessions.
// Each Set overwrites the previous value; no history is kept.
type DraftCache struct {
	db *sql.DB
}

func NewDraftCache(db *sql.DB) *DraftCache {
	return &DraftCache{db: db}
}

// Get returns the stored value and whether the key exists.
func (c *DraftCache) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `
		SELECT value FROM draft_cache WHERE cache_key = $1
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read draft %s: %w", key, err)
	}
	return value, true, nil
}

func (c *DraftCache) Set(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO draft_cache (cache_key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, formatTime(time.Now()))

	if err != nil {
		return fmt.Errorf("failed to write draft %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing a missing key is not an error.
func (c *DraftCache) Remove(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM draft_cache WHERE cache_key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to remove draft %s: %w", key, err)
	}
	return nil
}
