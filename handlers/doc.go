// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the regdesk API.

# Handler Types

  - WizardHandler: Draft sessions driven through the registration wizard
  - AdminHandler: Registration listing, statistics and export

Handlers are created via constructor functions that accept *sql.DB and Config:

	wizardHandler := handlers.NewWizardHandler(db, cfg)

# Wizard Flow

Clients open a draft and keep the returned draft key:

	POST /drafts               → CreateDraft (returns draft_key)
	PATCH /drafts/{key}        → UpdateDraft (edits: [{field, value}])
	POST /drafts/{key}/next    → Next (step gate)
	POST /drafts/{key}/back    → Back
	POST /drafts/{key}/submit  → Submit (returns registration_id)

Field names are dotted paths such as team_name, leader.email or
members.2.gender.

# Errors

Errors are JSON with a machine-readable code:

  - 400 unknown_field: Edit names a field that does not exist
  - 409 uniqueness_conflict: Team name already registered
  - 409 wrong_step: Operation not allowed at the current step
  - 422 validation_error: Required fields missing (fields lists them)
  - 422 policy_violation: No female member on the team
  - 503 store_unavailable: Storage failed or timed out

# Admin

Admin operations require the X-Admin-Key header and read from the
registration collection only.
*/
package handlers
