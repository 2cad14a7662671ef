// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/regdesk/models"
)

func member(name, gender, branch, semester string) models.Member {
	return models.Member{
		Name:         name,
		EnrollmentNo: "E-" + name,
		Contact:      "9999999999",
		Email:        name + "@example.com",
		Branch:       branch,
		Semester:     semester,
		Gender:       gender,
	}
}

func roster() []models.Member {
	return []models.Member{
		member("Asha", models.GenderFemale, "Computer Engineering", "5"),
		member("Ben", models.GenderMale, "Computer Engineering", "5"),
		member("Cara", models.GenderFemale, "Information Technology", "3"),
		member("Dev", models.GenderMale, "Mechanical Engineering", "5"),
		member("Eli", models.GenderOther, "", "3"),
		member("Finn", models.GenderMale, "Information Technology", ""),
	}
}

func TestAggregate(t *testing.T) {
	s := Aggregate(roster())

	assert.Equal(t, 6, s.Present)
	assert.Equal(t, 2, s.Female)
	assert.Equal(t, 3, s.Male)
	assert.Equal(t, map[string]int{
		"Computer Engineering":   2,
		"Information Technology": 2,
		"Mechanical Engineering": 1,
	}, s.Branches)
	assert.Equal(t, map[string]int{"5": 3, "3": 2}, s.Semesters)
}

func TestAggregate_SkipsUnfilledSlots(t *testing.T) {
	members := roster()
	members[2] = models.Member{Gender: models.GenderFemale, Branch: "Civil Engineering"}

	s := Aggregate(members)

	assert.Equal(t, 5, s.Present)
	assert.Equal(t, 1, s.Female, "slot without a name must not count")
	assert.NotContains(t, s.Branches, "Civil Engineering")
}

func TestAggregate_OrderIndependent(t *testing.T) {
	base := Aggregate(roster())

	permutations := [][]int{
		{5, 4, 3, 2, 1, 0},
		{1, 0, 3, 2, 5, 4},
		{2, 5, 0, 4, 1, 3},
	}
	for _, perm := range permutations {
		r := roster()
		shuffled := make([]models.Member, len(r))
		for i, j := range perm {
			shuffled[i] = r[j]
		}
		if diff := cmp.Diff(base, Aggregate(shuffled)); diff != "" {
			t.Errorf("Aggregate() differs for permutation %v (-want +got):\n%s", perm, diff)
		}
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	r := roster()
	assert.Equal(t, Aggregate(r), Aggregate(r))
}

func TestTeamStats(t *testing.T) {
	r := roster()
	d := models.Draft{Leader: r[0]}
	copy(d.Members[:], r[1:])

	ts := TeamStats(d)

	assert.Equal(t, 6, ts.TotalMembers)
	assert.Equal(t, 2, ts.FemaleMembers)
	assert.Equal(t, 2, ts.Branches["Computer Engineering"])
}

func TestTeamStats_TotalIsConstant(t *testing.T) {
	d := models.Draft{Leader: member("Solo", models.GenderFemale, "Civil Engineering", "1")}

	ts := TeamStats(d)

	assert.Equal(t, models.RosterSize, ts.TotalMembers)
	assert.Equal(t, 1, ts.FemaleMembers)
}

func TestBuildReport(t *testing.T) {
	r := roster()
	first := models.StoredRegistration{TeamName: "Alpha", Leader: r[0], Willingness: models.WillingnessYes}
	copy(first.Members[:], r[1:])
	second := models.StoredRegistration{TeamName: "Beta", Leader: r[3], Willingness: models.WillingnessNo}
	second.Members[0] = r[2]

	report := BuildReport([]models.StoredRegistration{first, second})

	assert.Equal(t, 2, report.TotalTeams)
	assert.Equal(t, 12, report.TotalParticipants)
	assert.Equal(t, 3, report.Female)
	assert.Equal(t, 4, report.Male)
	assert.Equal(t, 1, report.WillingTeams)
	assert.Equal(t, []Count{
		{Key: "Computer Engineering", Value: 2},
		{Key: "Information Technology", Value: 3},
		{Key: "Mechanical Engineering", Value: 2},
	}, report.Branches)
	assert.Equal(t, []Count{{Key: "3", Value: 3}, {Key: "5", Value: 4}}, report.Semesters)
}

func TestBuildReport_AgreesWithTeamStats(t *testing.T) {
	r := roster()
	reg := models.StoredRegistration{Leader: r[0]}
	copy(reg.Members[:], r[1:])
	reg.TeamStats = TeamStats(models.Draft{Leader: reg.Leader, Members: reg.Members})

	report := BuildReport([]models.StoredRegistration{reg})

	assert.Equal(t, reg.TeamStats.FemaleMembers, report.Female)
	for _, c := range report.Branches {
		assert.Equal(t, reg.TeamStats.Branches[c.Key], c.Value, c.Key)
	}
}

func TestDashboard_Empty(t *testing.T) {
	assert.Equal(t, models.DashboardSummary{}, Dashboard(nil))
}
