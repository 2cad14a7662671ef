// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/regdesk/cliparse"
	"github.com/danielhkuo/regdesk/db"
	"github.com/danielhkuo/regdesk/models"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, false); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    ":memory:",
		DatabaseType:   db.TypeSQLite,
		AdminKey:       TestAdminKey,
		EventName:      "SIH 2025",
		RequestTimeout: 5 * time.Second,
	}
}

// FilledMember returns a member with every field set.
func FilledMember(name, gender string) models.Member {
	return models.Member{
		Name:         name,
		EnrollmentNo: "244510316" + fmt.Sprintf("%03d", len(name)),
		Contact:      "9876543210",
		Email:        name + "@example.com",
		Branch:       "Computer Engineering",
		Semester:     "5",
		Gender:       gender,
	}
}

// CompleteDraft returns a draft that passes every step. The leader is
// female and all members are male.
func CompleteDraft(teamName string) models.Draft {
	d := models.Draft{
		TeamName:    teamName,
		PSNumber:    "PS001",
		Leader:      FilledMember("Leader", models.GenderFemale),
		Willingness: models.WillingnessYes,
	}
	for i := range d.Members {
		d.Members[i] = FilledMember(fmt.Sprintf("Member%d", i+1), models.GenderMale)
	}
	return d
}

// DraftEdits returns the PATCH edits that reproduce d on an empty draft.
func DraftEdits(d models.Draft) []models.FieldEdit {
	edits := []models.FieldEdit{
		{Field: models.FieldTeamName.Path(), Value: d.TeamName},
		{Field: models.FieldPSNumber.Path(), Value: d.PSNumber},
		{Field: models.FieldWillingness.Path(), Value: d.Willingness},
	}
	for slot, m := range d.Roster() {
		for _, attr := range models.MemberAttrs {
			f := models.MemberField{Slot: models.Slot(slot), Attr: attr}
			edits = append(edits, models.FieldEdit{Field: f.Path(), Value: m.Value(attr)})
		}
	}
	return edits
}

// InsertTestRegistration stores a registration for teamName and returns its ID
func InsertTestRegistration(t *testing.T, conn *sql.DB, teamName string, submittedAt time.Time) string {
	t.Helper()

	d := CompleteDraft(teamName)
	id, err := db.NewRegistrations(conn).Insert(context.Background(), models.StoredRegistration{
		TeamName:    d.TeamName,
		PSNumber:    d.PSNumber,
		Leader:      d.Leader,
		Members:     d.Members,
		Willingness: d.Willingness,
		SubmittedAt: submittedAt,
		IPAddress:   "203.0.113.7",
		UserAgent:   "testutil",
		Status:      models.StatusPending,
		TeamStats: models.TeamStats{
			TotalMembers:  models.RosterSize,
			FemaleMembers: 1,
			Branches:      map[string]int{"Computer Engineering": models.RosterSize},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create test registration: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
