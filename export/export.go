// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package export renders registrations as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/regdesk/models"
	"github.com/danielhkuo/regdesk/stats"
)

// Sheet names in workbook order
const (
	SheetTeamSummary = "Team Summary"
	SheetAllMembers  = "All Members"
	SheetStatistics  = "Statistics"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	teamSummaryHeader = []interface{}{
		"S.No", "Team Name", "PS Number", "Team Leader", "Leader Enrollment",
		"Leader Contact", "Leader Email", "Leader Branch", "Leader Semester",
		"Female Members", "National Willingness", "Submission Date", "Submission Time",
	}
	allMembersHeader = []interface{}{
		"Team Name", "PS Number", "Role", "Name", "Enrollment Number",
		"Contact", "Email", "Gender", "Branch", "Semester", "Submission Date",
	}
	statisticsHeader = []interface{}{"Metric", "Value"}
)

// Filename returns "<event>_Registrations_<date>_<time>.xlsx" with spaces in
// the event name replaced by underscores.
func Filename(event string, now time.Time) string {
	return fmt.Sprintf("%s_Registrations_%s_%s.xlsx",
		strings.ReplaceAll(event, " ", "_"),
		now.Format(dateLayout),
		now.Format("15-04-05"))
}

// Build creates the three-sheet workbook. Submission times are rendered in
// loc, or UTC when loc is nil. The caller must Close the returned file.
func Build(regs []models.StoredRegistration, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	// NewFile starts with a default sheet; rename it rather than leave it empty
	if err := f.SetSheetName(f.GetSheetName(0), SheetTeamSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetAllMembers, SheetStatistics} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	writers := []func(*excelize.File, []models.StoredRegistration, *time.Location) error{
		writeTeamSummary,
		writeAllMembers,
		writeStatistics,
	}
	for _, write := range writers {
		if err := write(f, regs, loc); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, regs []models.StoredRegistration, loc *time.Location) error {
	f, err := Build(regs, loc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTeamSummary(f *excelize.File, regs []models.StoredRegistration, loc *time.Location) error {
	rows := [][]interface{}{teamSummaryHeader}
	for i, r := range regs {
		at := r.SubmittedAt.In(loc)
		rows = append(rows, []interface{}{
			i + 1,
			r.TeamName,
			r.PSNumber,
			r.Leader.Name,
			r.Leader.EnrollmentNo,
			r.Leader.Contact,
			r.Leader.Email,
			r.Leader.Branch,
			r.Leader.Semester,
			r.TeamStats.FemaleMembers,
			r.Willingness,
			at.Format(dateLayout),
			at.Format(timeLayout),
		})
	}
	return writeRows(f, SheetTeamSummary, rows)
}

func writeAllMembers(f *excelize.File, regs []models.StoredRegistration, loc *time.Location) error {
	rows := [][]interface{}{allMembersHeader}
	for _, r := range regs {
		date := r.SubmittedAt.In(loc).Format(dateLayout)
		for slot, m := range r.Roster() {
			if !m.Present() {
				continue
			}
			role := "Team Leader"
			if slot > 0 {
				role = fmt.Sprintf("Member %d", slot)
			}
			rows = append(rows, []interface{}{
				r.TeamName, r.PSNumber, role,
				m.Name, m.EnrollmentNo, m.Contact, m.Email,
				m.Gender, m.Branch, m.Semester, date,
			})
		}
	}
	return writeRows(f, SheetAllMembers, rows)
}

func writeStatistics(f *excelize.File, regs []models.StoredRegistration, _ *time.Location) error {
	report := stats.BuildReport(regs)

	rows := [][]interface{}{
		statisticsHeader,
		{"Total Teams", report.TotalTeams},
		{"Total Participants", report.TotalParticipants},
		{"Female Participants", report.Female},
		{"Male Participants", report.Male},
		{"Teams Willing for National", report.WillingTeams},
		{"", ""},
		{"BRANCH WISE DISTRIBUTION", ""},
	}
	for _, c := range report.Branches {
		rows = append(rows, []interface{}{c.Key, c.Value})
	}
	rows = append(rows,
		[]interface{}{"", ""},
		[]interface{}{"SEMESTER WISE DISTRIBUTION", ""},
	)
	for _, c := range report.Semesters {
		rows = append(rows, []interface{}{"Semester " + c.Key, c.Value})
	}
	return writeRows(f, SheetStatistics, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
