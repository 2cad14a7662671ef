// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/regdesk/models"
)

var (
	ErrUniquenessConflict = errors.New("team name already exists")
	ErrStoreUnavailable   = errors.New("registration store unavailable")
	ErrPolicyViolation    = errors.New("policy violation")
	ErrNoForwardStep      = errors.New("already on the final step")
	ErrWrongStep          = errors.New("submission is only allowed from the final step")
)

// User-facing messages
const (
	MessageFemaleRequired    = "At least 1 female member is compulsory"
	MessageFemaleRecommended = "2 female members are recommended for better team balance"
)

// ValidationError lists the required fields missing for a step.
type ValidationError struct {
	Step   models.Step
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: missing required fields: %s", e.Step, strings.Join(e.Fields, ", "))
}

// PolicyError is a business-rule rejection. It matches ErrPolicyViolation.
type PolicyError struct {
	Rule    string
	Message string
}

func (e *PolicyError) Error() string {
	return e.Message
}

func (e *PolicyError) Unwrap() error {
	return ErrPolicyViolation
}

func storeUnavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
