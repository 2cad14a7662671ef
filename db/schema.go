// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// With strictTeamNames the team_name column also gets a UNIQUE index, turning
// the advisory uniqueness check into a storage-level constraint.
func CreateSchema(db *sql.DB, strictTeamNames bool) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if strictTeamNames {
		_, err = db.Exec(strictTeamNameIndex)
		if err != nil {
			return fmt.Errorf("failed to create team name constraint: %w", err)
		}
	}

	return nil
}

const schema = `
-- Submitted registrations (one JSON document per team)
CREATE TABLE IF NOT EXISTS registration (
    id TEXT PRIMARY KEY,
    team_name TEXT NOT NULL,
    ps_number TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    submitted_at TEXT NOT NULL,
    document TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_registration_team_name ON registration(team_name);
CREATE INDEX IF NOT EXISTS idx_registration_ps_number ON registration(ps_number);
CREATE INDEX IF NOT EXISTS idx_registration_submitted_at ON registration(submitted_at);

-- In-progress wizard sessions
CREATE TABLE IF NOT EXISTS draft_cache (
    cache_key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

const strictTeamNameIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS ux_registration_team_name ON registration(team_name);
`
