// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/regdesk/models"
)

// Queryable fields
const (
	FieldTeamName    = "teamName"
	FieldPSNumber    = "psNumber"
	FieldStatus      = "status"
	FieldSubmittedAt = "submittedAt"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

var ErrUnknownField = errors.New("unknown field")

var equalsColumns = map[string]string{
	FieldTeamName: "team_name",
	FieldPSNumber: "ps_number",
	FieldStatus:   "status",
}

var orderColumns = map[string]string{
	FieldSubmittedAt: "submitted_at",
	FieldTeamName:    "team_name",
}

// Registrations is the registration collection. Each row carries the full
// JSON document plus the columns it can be queried and ordered by.
type Registrations struct {
	db *sql.DB
}

func NewRegistrations(db *sql.DB) *Registrations {
	return &Registrations{db: db}
}

// Insert stores reg under a newly assigned ID and returns the ID.
// A UNIQUE index hit (strict team names) returns ErrDuplicate.
func (s *Registrations) Insert(ctx context.Context, reg models.StoredRegistration) (string, error) {
	reg.ID = uuid.NewString()
	if reg.Status == "" {
		reg.Status = models.StatusPending
	}

	doc, err := json.Marshal(reg)
	if err != nil {
		return "", fmt.Errorf("failed to encode registration: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO registration (id, team_name, ps_number, status, submitted_at, document)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, reg.ID, reg.TeamName, reg.PSNumber, reg.Status, formatTime(reg.SubmittedAt), string(doc))

	if err != nil {
		if IsUniqueViolation(err) {
			return "", fmt.Errorf("%w: team_name %q", ErrDuplicate, reg.TeamName)
		}
		return "", fmt.Errorf("failed to insert registration: %w", err)
	}

	return reg.ID, nil
}

// QueryEquals returns every registration whose field equals value exactly.
func (s *Registrations) QueryEquals(ctx context.Context, field, value string) ([]models.StoredRegistration, error) {
	column, ok := equalsColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT document FROM registration WHERE `+column+` = $1
	`, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	return scanDocuments(rows)
}

// ListOrderedBy returns the whole collection sorted by field.
func (s *Registrations) ListOrderedBy(ctx context.Context, field string, dir Direction) ([]models.StoredRegistration, error) {
	column, ok := orderColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	order := "ASC"
	if dir == Desc {
		order = "DESC"
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT document FROM registration
		ORDER BY `+column+` `+order+`, id `+order)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return scanDocuments(rows)
}

// Get returns a single registration by ID.
func (s *Registrations) Get(ctx context.Context, id string) (models.StoredRegistration, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM registration WHERE id = $1
	`, id).Scan(&doc)

	if err == sql.ErrNoRows {
		return models.StoredRegistration{}, ErrNotFound
	}
	if err != nil {
		return models.StoredRegistration{}, fmt.Errorf("failed to query registration: %w", err)
	}

	var reg models.StoredRegistration
	if err := json.Unmarshal([]byte(doc), &reg); err != nil {
		return models.StoredRegistration{}, fmt.Errorf("failed to decode registration %s: %w", id, err)
	}
	return reg, nil
}

func scanDocuments(rows *sql.Rows) ([]models.StoredRegistration, error) {
	defer rows.Close()

	regs := []models.StoredRegistration{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}

		var reg models.StoredRegistration
		if err := json.Unmarshal([]byte(doc), &reg); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read registrations: %w", err)
	}
	return regs, nil
}
