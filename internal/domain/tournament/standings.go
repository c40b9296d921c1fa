package tournament

import (
	"sort"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
)

// Tally accumulates one team's results inside its group.
type Tally struct {
	Team             string
	Group            int
	RegistrationDate team.RegistrationDate
	TotalPoints      int
	TotalGoals       int
	AlternatePoints  int

	// seq is the team's position in the input slice, the last tie-break.
	seq int
}

// Tallies maps group -> team name -> accumulated results.
type Tallies map[int]map[string]Tally

// Entry is one ranked row of a group table.
type Entry struct {
	Position         int
	Team             string
	TotalPoints      int
	TotalGoals       int
	AlternatePoints  int
	RegistrationDate team.RegistrationDate
	Qualified        bool
}

type GroupStanding struct {
	Group   int
	Entries []Entry
}

// Aggregate folds matches into per-group tallies. Every team is seeded, so
// teams without results still appear. Matches naming an unknown team, teams
// from different groups, or the same team twice are skipped.
func Aggregate(teams []team.Team, matches []match.Match, rules Rules) Tallies {
	out := make(Tallies)
	groupOf := make(map[string]int, len(teams))
	for idx, item := range teams {
		if _, exists := groupOf[item.Name]; exists {
			continue
		}
		groupOf[item.Name] = item.Group

		if out[item.Group] == nil {
			out[item.Group] = make(map[string]Tally)
		}
		out[item.Group][item.Name] = Tally{
			Team:             item.Name,
			Group:            item.Group,
			RegistrationDate: item.RegistrationDate,
			seq:              idx,
		}
	}

	for _, item := range matches {
		groupA, okA := groupOf[item.TeamA]
		groupB, okB := groupOf[item.TeamB]
		if !okA || !okB || groupA != groupB || item.TeamA == item.TeamB {
			continue
		}

		group := out[groupA]
		a := group[item.TeamA]
		b := group[item.TeamB]

		a.TotalGoals += item.GoalsA
		b.TotalGoals += item.GoalsB

		switch {
		case item.GoalsA > item.GoalsB:
			a.TotalPoints += rules.WinPoints
			a.AlternatePoints += rules.AlternateWinPoints
			b.TotalPoints += rules.LossPoints
			b.AlternatePoints += rules.AlternateLossPoints
		case item.GoalsB > item.GoalsA:
			b.TotalPoints += rules.WinPoints
			b.AlternatePoints += rules.AlternateWinPoints
			a.TotalPoints += rules.LossPoints
			a.AlternatePoints += rules.AlternateLossPoints
		default:
			a.TotalPoints += rules.DrawPoints
			a.AlternatePoints += rules.AlternateDrawPoints
			b.TotalPoints += rules.DrawPoints
			b.AlternatePoints += rules.AlternateDrawPoints
		}

		group[item.TeamA] = a
		group[item.TeamB] = b
	}

	return out
}

// Rank orders each group by points, goals, alternate points (all descending)
// and registration date (earliest first). Rows equal on all four keys keep
// their input order. Groups are returned in ascending order.
func Rank(tallies Tallies, rules Rules) []GroupStanding {
	groups := make([]int, 0, len(tallies))
	for group := range tallies {
		groups = append(groups, group)
	}
	sort.Ints(groups)

	out := make([]GroupStanding, 0, len(groups))
	for _, group := range groups {
		rows := make([]Tally, 0, len(tallies[group]))
		for _, row := range tallies[group] {
			rows = append(rows, row)
		}
		sort.Slice(rows, func(i, j int) bool {
			return rankedBefore(rows[i], rows[j])
		})

		entries := make([]Entry, 0, len(rows))
		for idx, row := range rows {
			entries = append(entries, Entry{
				Position:         idx + 1,
				Team:             row.Team,
				TotalPoints:      row.TotalPoints,
				TotalGoals:       row.TotalGoals,
				AlternatePoints:  row.AlternatePoints,
				RegistrationDate: row.RegistrationDate,
				Qualified:        idx < rules.QualifiersPerGroup,
			})
		}
		out = append(out, GroupStanding{Group: group, Entries: entries})
	}

	return out
}

// Standings runs Aggregate and Rank over one snapshot.
func Standings(teams []team.Team, matches []match.Match, rules Rules) []GroupStanding {
	return Rank(Aggregate(teams, matches, rules), rules)
}

func rankedBefore(a, b Tally) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.TotalGoals != b.TotalGoals {
		return a.TotalGoals > b.TotalGoals
	}
	if a.AlternatePoints != b.AlternatePoints {
		return a.AlternatePoints > b.AlternatePoints
	}
	if a.RegistrationDate != b.RegistrationDate {
		return a.RegistrationDate.Before(b.RegistrationDate)
	}
	return a.seq < b.seq
}
