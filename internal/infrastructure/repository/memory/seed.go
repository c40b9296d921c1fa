package memory

import (
	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
)

// SeedTeams returns a small two-group tournament used when the in-memory
// backend starts with demo data.
func SeedTeams() []team.Team {
	return []team.Team{
		{Name: "Alpha", RegistrationDate: team.RegistrationDate{Day: 1, Month: 1}, Group: 1},
		{Name: "Beta", RegistrationDate: team.RegistrationDate{Day: 2, Month: 1}, Group: 1},
		{Name: "Gamma", RegistrationDate: team.RegistrationDate{Day: 3, Month: 1}, Group: 1},
		{Name: "Delta", RegistrationDate: team.RegistrationDate{Day: 4, Month: 1}, Group: 1},
		{Name: "Epsilon", RegistrationDate: team.RegistrationDate{Day: 15, Month: 2}, Group: 2},
		{Name: "Zeta", RegistrationDate: team.RegistrationDate{Day: 17, Month: 2}, Group: 2},
		{Name: "Eta", RegistrationDate: team.RegistrationDate{Day: 1, Month: 3}, Group: 2},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{ID: 1, TeamA: "Alpha", TeamB: "Beta", GoalsA: 3, GoalsB: 1},
		{ID: 2, TeamA: "Gamma", TeamB: "Delta", GoalsA: 0, GoalsB: 0},
		{ID: 3, TeamA: "Epsilon", TeamB: "Zeta", GoalsA: 2, GoalsB: 2},
		{ID: 4, TeamA: "Eta", TeamB: "Epsilon", GoalsA: 1, GoalsB: 0},
	}
}
