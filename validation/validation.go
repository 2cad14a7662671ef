// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validation checks wizard steps for required fields and the gender
// balance rule.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/regdesk/models"
)

// RecommendedFemale is the female head count below which an advisory is raised.
const RecommendedFemale = 2

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so paths match models.ParseField
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}

	return v
}

type teamDetails struct {
	TeamName string        `json:"team_name" validate:"notblank"`
	PSNumber string        `json:"ps_number" validate:"notblank"`
	Leader   models.Member `json:"leader"`
}

type finalDetails struct {
	Willingness string `json:"willingness" validate:"oneof=Yes Maybe No"`
}

// Step1 returns the paths of missing team and leader fields.
func Step1(d models.Draft) []string {
	return missing(validate.Struct(teamDetails{
		TeamName: d.TeamName,
		PSNumber: d.PSNumber,
		Leader:   d.Leader,
	}), "")
}

// Step2 returns the paths of missing member fields. A member counts as
// filled only when all seven fields are set.
func Step2(d models.Draft) []string {
	var fields []string
	for i, m := range d.Members {
		prefix := models.Slot(i + 1).Path()
		fields = append(fields, missing(validate.Struct(m), prefix)...)
	}
	return fields
}

// Step3 returns ["willingness"] unless one of the three answers was chosen.
func Step3(d models.Draft) []string {
	return missing(validate.Struct(finalDetails{Willingness: d.Willingness}), "")
}

// Step runs the rule for the given wizard step.
func Step(s models.Step, d models.Draft) []string {
	switch s {
	case models.Step1:
		return Step1(d)
	case models.Step2:
		return Step2(d)
	case models.Step3:
		return Step3(d)
	}
	return nil
}

// Balance is the gender-balance verdict over the six-person roster.
type Balance struct {
	Female   int
	Blocked  bool // no female member
	Advisory bool // exactly one female member
}

// GenderBalance counts female members across all six roster slots. A slot
// counts by its gender alone, whether or not its other fields are set.
func GenderBalance(d models.Draft) Balance {
	female := 0
	for _, m := range d.Roster() {
		if m.Gender == models.GenderFemale {
			female++
		}
	}
	return Balance{
		Female:   female,
		Blocked:  female == 0,
		Advisory: female > 0 && female < RecommendedFemale,
	}
}

// missing flattens validator errors into field paths. The leading struct
// name in each namespace is replaced by prefix.
func missing(err error, prefix string) []string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{prefix}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		if prefix != "" {
			path = prefix + "." + path
		}
		fields = append(fields, path)
	}
	return fields
}
