// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

// Field names one editable value of a Draft.
// The only implementations are TeamField and MemberField.
type Field interface {
	Path() string
	apply(d *Draft, value string) error
}

// TeamField is a top-level draft field.
type TeamField string

const (
	FieldTeamName    TeamField = "team_name"
	FieldPSNumber    TeamField = "ps_number"
	FieldWillingness TeamField = "willingness"
)

func (f TeamField) Path() string { return string(f) }

func (f TeamField) apply(d *Draft, value string) error {
	switch f {
	case FieldTeamName:
		d.TeamName = value
	case FieldPSNumber:
		d.PSNumber = value
	case FieldWillingness:
		if !ValidWillingness(value) && value != WillingnessUnset {
			return fmt.Errorf("%w: willingness %q", ErrInvalidValue, value)
		}
		d.Willingness = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	return nil
}

// MemberAttr is one of the seven profile fields of a Member.
type MemberAttr string

const (
	AttrName         MemberAttr = "name"
	AttrEnrollmentNo MemberAttr = "enrollment_no"
	AttrContact      MemberAttr = "contact"
	AttrEmail        MemberAttr = "email"
	AttrBranch       MemberAttr = "branch"
	AttrSemester     MemberAttr = "semester"
	AttrGender       MemberAttr = "gender"
)

// MemberAttrs lists every member attribute in form order.
var MemberAttrs = []MemberAttr{
	AttrName, AttrEnrollmentNo, AttrContact, AttrGender, AttrEmail, AttrBranch, AttrSemester,
}

// Slot identifies a roster position: 0 is the leader, 1-5 are members.
type Slot int

const SlotLeader Slot = 0

func (s Slot) Path() string {
	if s == SlotLeader {
		return "leader"
	}
	return "members." + strconv.Itoa(int(s))
}

// MemberField is one attribute of the leader or a member.
type MemberField struct {
	Slot Slot
	Attr MemberAttr
}

func (f MemberField) Path() string {
	return f.Slot.Path() + "." + string(f.Attr)
}

func (f MemberField) apply(d *Draft, value string) error {
	if f.Slot < SlotLeader || f.Slot > MemberCount {
		return fmt.Errorf("%w: slot %d", ErrUnknownField, f.Slot)
	}
	m := &d.Leader
	if f.Slot != SlotLeader {
		m = &d.Members[f.Slot-1]
	}
	switch f.Attr {
	case AttrName:
		m.Name = value
	case AttrEnrollmentNo:
		m.EnrollmentNo = value
	case AttrContact:
		m.Contact = value
	case AttrEmail:
		m.Email = value
	case AttrBranch:
		m.Branch = value
	case AttrSemester:
		m.Semester = value
	case AttrGender:
		m.Gender = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, f.Path())
	}
	return nil
}

// Value returns the member's value for attr, or "" for an unknown attr.
func (m Member) Value(attr MemberAttr) string {
	switch attr {
	case AttrName:
		return m.Name
	case AttrEnrollmentNo:
		return m.EnrollmentNo
	case AttrContact:
		return m.Contact
	case AttrEmail:
		return m.Email
	case AttrBranch:
		return m.Branch
	case AttrSemester:
		return m.Semester
	case AttrGender:
		return m.Gender
	}
	return ""
}

// Leader returns the field for one of the leader's attributes.
func Leader(attr MemberAttr) MemberField {
	return MemberField{Slot: SlotLeader, Attr: attr}
}

// TeamMember returns the field for one attribute of member n (1-5).
func TeamMember(n int, attr MemberAttr) MemberField {
	return MemberField{Slot: Slot(n), Attr: attr}
}

// ParseField resolves a wire path such as "team_name", "leader.email"
// or "members.3.gender".
func ParseField(path string) (Field, error) {
	switch TeamField(path) {
	case FieldTeamName, FieldPSNumber, FieldWillingness:
		return TeamField(path), nil
	}

	parts := strings.Split(path, ".")
	var slot Slot
	var attr string
	switch {
	case len(parts) == 2 && parts[0] == "leader":
		slot, attr = SlotLeader, parts[1]
	case len(parts) == 3 && parts[0] == "members":
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 || n > MemberCount {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
		}
		slot, attr = Slot(n), parts[2]
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
	}

	for _, a := range MemberAttrs {
		if string(a) == attr {
			return MemberField{Slot: slot, Attr: a}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownField, path)
}

// Edit sets one field of a draft.
type Edit struct {
	Field Field
	Value string
}

// Set builds an Edit.
func Set(f Field, value string) Edit {
	return Edit{Field: f, Value: value}
}

// Apply mutates the draft. The draft is left untouched on error.
func (d *Draft) Apply(e Edit) error {
	if e.Field == nil {
		return fmt.Errorf("%w: missing field", ErrUnknownField)
	}
	return e.Field.apply(d, e.Value)
}

// ValidWillingness reports whether v is one of the three selectable answers.
func ValidWillingness(v string) bool {
	switch v {
	case WillingnessYes, WillingnessMaybe, WillingnessNo:
		return true
	}
	return false
}
