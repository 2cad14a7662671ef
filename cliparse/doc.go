// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Cobra commands bind the same flags and resolve them after parsing:

	cliparse.RegisterFlags(cmd.Flags(), &cfg)
	cfg, err := cliparse.Resolve(cmd.Flags(), cfg)

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite DSN or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Key for the admin dashboard (admin routes disabled when empty)
  - EventName: Used in export filenames (default: "SIH 2025")
  - EventFile: Optional YAML file with event settings
  - StrictTeamNames: Add a UNIQUE index on team names (default: false)
  - RequestTimeout: Bound on store calls per request (default: 10s)
  - DraftCache: sql keeps drafts in the database, memory keeps them in the
    process and loses them on restart (default: sql)

# CLI Flags

	-p, --port              Server port
	-d, --database-url      Database URL
	-t, --database-type     sqlite or postgres
	--admin-key             Admin dashboard key
	--event-name            Event name
	--event-file            YAML event file
	--strict-team-names     Enforce unique team names
	--request-timeout       Store call timeout
	--draft-cache           sql or memory

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	ADMIN_KEY         → --admin-key
	EVENT_NAME        → --event-name
	EVENT_FILE        → --event-file
	STRICT_TEAM_NAMES → --strict-team-names
	REQUEST_TIMEOUT   → --request-timeout
	DRAFT_CACHE       → --draft-cache

CLI flags take precedence over environment variables, which take precedence
over the event file. A .env file is loaded with LoadDotEnv before resolving.

# Event File

	event_name: SIH 2025
	strict_team_names: true
	request_timeout: 5s

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - DRAFT_CACHE is not sql or memory
  - a numeric, boolean or duration variable does not parse
*/
package cliparse
