// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats aggregates member counts.
package stats

import (
	"sort"

	"github.com/danielhkuo/regdesk/models"
)

// Summary holds counts over a collection of members.
// Only present members (non-empty name) are counted.
type Summary struct {
	Present   int
	Female    int
	Male      int
	Branches  map[string]int
	Semesters map[string]int
}

// Aggregate counts a member collection. It is the single aggregation used for
// both per-team stats and the cross-team report.
func Aggregate(members []models.Member) Summary {
	s := Summary{
		Branches:  make(map[string]int),
		Semesters: make(map[string]int),
	}

	for _, m := range members {
		if !m.Present() {
			continue
		}
		s.Present++

		switch m.Gender {
		case models.GenderFemale:
			s.Female++
		case models.GenderMale:
			s.Male++
		}

		if m.Branch != "" {
			s.Branches[m.Branch]++
		}
		if m.Semester != "" {
			s.Semesters[m.Semester]++
		}
	}

	return s
}

// TeamStats computes the stats embedded in a registration at submission time.
// TotalMembers is always the roster size, not the filled count.
func TeamStats(d models.Draft) models.TeamStats {
	s := Aggregate(d.Roster())
	return models.TeamStats{
		TotalMembers:  models.RosterSize,
		FemaleMembers: s.Female,
		Branches:      s.Branches,
	}
}

// Report is the cross-team statistics sheet.
type Report struct {
	TotalTeams        int
	TotalParticipants int
	Female            int
	Male              int
	WillingTeams      int
	Branches          []Count
	Semesters         []Count
}

// Count is one row of a distribution, sorted by key.
type Count struct {
	Key   string
	Value int
}

// BuildReport aggregates every member of every registration.
func BuildReport(regs []models.StoredRegistration) Report {
	var all []models.Member
	willing := 0
	for _, r := range regs {
		all = append(all, r.Roster()...)
		if r.Willingness == models.WillingnessYes {
			willing++
		}
	}

	s := Aggregate(all)
	return Report{
		TotalTeams:        len(regs),
		TotalParticipants: len(regs) * models.RosterSize,
		Female:            s.Female,
		Male:              s.Male,
		WillingTeams:      willing,
		Branches:          sorted(s.Branches),
		Semesters:         sorted(s.Semesters),
	}
}

// Dashboard returns the admin summary cards.
func Dashboard(regs []models.StoredRegistration) models.DashboardSummary {
	r := BuildReport(regs)
	return models.DashboardSummary{
		TotalTeams:        r.TotalTeams,
		TotalParticipants: r.TotalParticipants,
		WillingTeams:      r.WillingTeams,
		FemaleMembers:     r.Female,
	}
}

func sorted(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for k, v := range m {
		counts = append(counts, Count{Key: k, Value: v})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Key < counts[j].Key
	})
	return counts
}
