// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the regdesk API.

# Route Registration

NewRouter creates a chi router with all endpoints, wrapped in CORS:

	handler := router.NewRouter(db, cfg)

Every request gets a request ID, a completion log line and panic recovery.

# Endpoints

Health:

	GET /health

Registration wizard (public, keyed by the draft key):

	POST   /drafts              - Open a new draft
	GET    /drafts/{key}        - Current step and draft
	PATCH  /drafts/{key}        - Apply field edits
	DELETE /drafts/{key}        - Discard the draft
	POST   /drafts/{key}/next   - Validate and advance
	POST   /drafts/{key}/back   - Go back one step
	POST   /drafts/{key}/submit - Store the registration

Admin dashboard (requires X-Admin-Key, mounted only when an admin key is
configured):

	GET /admin/registrations      - Newest first, with summary
	GET /admin/registrations/{id} - Full registration
	GET /admin/summary            - Dashboard counts
	GET /admin/export             - xlsx download
*/
package router
