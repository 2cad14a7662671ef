// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// MemberCount is the number of non-leader slots on a team.
const MemberCount = 5

// RosterSize is the leader plus every member slot.
const RosterSize = MemberCount + 1

// Gender values offered by the registration form
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Willingness values
const (
	WillingnessUnset = ""
	WillingnessYes   = "Yes"
	WillingnessMaybe = "Maybe"
	WillingnessNo    = "No"
)

// Registration status constants
const (
	StatusPending = "pending"
)

// UnknownIP is stored when the client address cannot be determined.
const UnknownIP = "Unknown"

// Step is a wizard position.
type Step int

const (
	Step1 Step = 1 // team details and leader
	Step2 Step = 2 // team members
	Step3 Step = 3 // final details
)

func (s Step) Valid() bool {
	return s >= Step1 && s <= Step3
}

// Domain types

type Member struct {
	Name         string `json:"name" validate:"required"`
	EnrollmentNo string `json:"enrollment_no" validate:"required"`
	Contact      string `json:"contact" validate:"required"`
	Email        string `json:"email" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	Semester     string `json:"semester" validate:"required"`
	Gender       string `json:"gender" validate:"required"`
}

// Present reports whether the slot holds a participant.
// A member with an empty name is an unfilled slot.
func (m Member) Present() bool {
	return m.Name != ""
}

// Draft is an in-progress registration.
// Members is an array so the five-slot invariant cannot be broken.
type Draft struct {
	TeamName    string              `json:"team_name"`
	PSNumber    string              `json:"ps_number"`
	Leader      Member              `json:"leader"`
	Members     [MemberCount]Member `json:"members"`
	Willingness string              `json:"willingness"`
}

// Roster returns the leader followed by the five members.
func (d Draft) Roster() []Member {
	roster := make([]Member, 0, RosterSize)
	roster = append(roster, d.Leader)
	roster = append(roster, d.Members[:]...)
	return roster
}

// Session is the persisted wizard state for one browser.
type Session struct {
	Step  Step  `json:"step"`
	Draft Draft `json:"draft"`
}

// NewSession returns a fresh Step1 session with an empty draft.
func NewSession() Session {
	return Session{Step: Step1}
}

type TeamStats struct {
	TotalMembers  int            `json:"total_members"`
	FemaleMembers int            `json:"female_members"`
	Branches      map[string]int `json:"branches"`
}

// StoredRegistration is an immutable submitted registration.
type StoredRegistration struct {
	ID          string              `json:"id"`
	TeamName    string              `json:"team_name"`
	PSNumber    string              `json:"ps_number"`
	Leader      Member              `json:"leader"`
	Members     [MemberCount]Member `json:"members"`
	Willingness string              `json:"willingness"`
	SubmittedAt time.Time           `json:"submitted_at"`
	IPAddress   string              `json:"ip_address"`
	UserAgent   string              `json:"user_agent"`
	Status      string              `json:"status"`
	TeamStats   TeamStats           `json:"team_stats"`
}

// Roster returns the leader followed by the five members.
func (r StoredRegistration) Roster() []Member {
	return Draft{Leader: r.Leader, Members: r.Members}.Roster()
}
