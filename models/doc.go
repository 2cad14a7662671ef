// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Member: one participant's seven profile fields
  - Draft: in-progress registration (team, leader, exactly five members, willingness)
  - Session: wizard step plus draft, the unit persisted in the draft cache
  - StoredRegistration: immutable submitted record with embedded TeamStats
  - TeamStats: per-team member, female and branch counts

A Member with an empty name is an unfilled slot. Draft.Members is a fixed
array of MemberCount entries, so a draft can never hold more or fewer.

# Field Edits

Drafts are mutated through typed fields rather than free-form names:

	d.Apply(models.Set(models.FieldTeamName, "Alpha"))
	d.Apply(models.Set(models.Leader(models.AttrGender), "Female"))
	d.Apply(models.Set(models.TeamMember(3, models.AttrEmail), "c@example.com"))

Wire paths are resolved with ParseField:

	team_name | ps_number | willingness
	leader.<attr>
	members.<1-5>.<attr>

Unknown paths return ErrUnknownField.

# Request Types

  - UpdateDraftRequest: edits ([]FieldEdit)

# Response Types

  - CreateDraftResponse: draft_key, session
  - SessionResponse: session
  - TransitionResponse: session, advisories
  - SubmitResponse: registration_id, submitted_at, message, session
  - ListRegistrationsResponse: registrations, summary
  - ErrorResponse: error, message, code, fields

# Constants

Willingness values:

	WillingnessYes   = "Yes"
	WillingnessMaybe = "Maybe"
	WillingnessNo    = "No"

Registration status:

	StatusPending = "pending"
*/
package models
