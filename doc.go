// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the regdesk registration server.

regdesk collects hackathon team registrations through a three-step wizard
(team details and leader, five members, final details) and gives organizers
an admin dashboard with aggregate statistics and an xlsx export.

# Starting the Server

	DATABASE_URL=regdesk.db ADMIN_KEY=... regdesk serve

Or with flags:

	regdesk serve -p 3318 -t postgres -d "postgres://..."

Variables in a .env file in the working directory are loaded first
(--env-file to change the path). Real environment variables win.

# Exporting

	regdesk export -d regdesk.db -o ./exports

writes SIH_2025_Registrations_<timestamp>.xlsx with the Team Summary,
All Members and Statistics sheets.

# Logging

Logs are structured JSON from zap. --verbose enables debug level.

# Architecture

  - wizard: Draft sessions, step gates and submission
  - validation: Required-field and gender balance rules
  - stats: Per-team and dashboard aggregates
  - export: xlsx workbook rendering
  - handlers: HTTP handlers for drafts and the admin dashboard
  - router: chi route definitions
  - middleware: CORS, request logging, admin key check, JSON helpers
  - clientinfo: Client IP and user agent of a request
  - models: Domain, request and response types
  - auth: Draft keys and admin key comparison
  - db: Registration collection and draft cache on SQLite or PostgreSQL
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
