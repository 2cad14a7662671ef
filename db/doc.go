// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles storage for registrations and draft sessions.

# Connections

Open connects to SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq):

	conn, err := db.Open(db.TypeSQLite, "regdesk.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.StrictTeamNames); err != nil {
		return err
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - registration: One JSON document per submitted team, plus the
    team_name, ps_number, status and submitted_at columns used for queries
  - draft_cache: Wizard sessions by cache key

# Uniqueness

Team names are indexed but not unique by default. With strict team names a
UNIQUE index is added and Insert reports ErrDuplicate on a clash.

# Collections

Registrations supports Insert, Get, QueryEquals and ListOrderedBy over the
Field constants. DraftCache is a string key-value store with Get, Set and
Remove.
*/
package db
