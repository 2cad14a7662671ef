// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Error codes returned in ErrorResponse.Code
const (
	CodeValidation         = "validation_error"
	CodeUniquenessConflict = "uniqueness_conflict"
	CodeStoreUnavailable   = "store_unavailable"
	CodePolicyViolation    = "policy_violation"
	CodeWrongStep          = "wrong_step"
	CodeUnknownField       = "unknown_field"
)

// Request types

type FieldEdit struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type UpdateDraftRequest struct {
	Edits []FieldEdit `json:"edits"`
}

// Response types

type CreateDraftResponse struct {
	DraftKey string  `json:"draft_key"`
	Session  Session `json:"session"`
}

type SessionResponse struct {
	Session Session `json:"session"`
}

type TransitionResponse struct {
	Session    Session  `json:"session"`
	Advisories []string `json:"advisories,omitempty"`
}

type SubmitResponse struct {
	RegistrationID string    `json:"registration_id"`
	SubmittedAt    time.Time `json:"submitted_at"`
	Message        string    `json:"message"`
	Session        Session   `json:"session"`
}

// RegistrationListItem is one row of the admin dashboard table.
type RegistrationListItem struct {
	ID            string    `json:"id"`
	TeamName      string    `json:"team_name"`
	PSNumber      string    `json:"ps_number"`
	LeaderName    string    `json:"leader_name"`
	LeaderEmail   string    `json:"leader_email"`
	LeaderContact string    `json:"leader_contact"`
	FemaleMembers int       `json:"female_members"`
	Willingness   string    `json:"willingness"`
	SubmittedAt   time.Time `json:"submitted_at"`
	SubmittedAgo  string    `json:"submitted_ago"`
}

type ListRegistrationsResponse struct {
	Registrations []RegistrationListItem `json:"registrations"`
	Summary       DashboardSummary       `json:"summary"`
}

// DashboardSummary backs the admin statistics cards.
type DashboardSummary struct {
	TotalTeams        int `json:"total_teams"`
	TotalParticipants int `json:"total_participants"`
	WillingTeams      int `json:"willing_teams"`
	FemaleMembers     int `json:"female_members"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Code    string   `json:"code,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}
