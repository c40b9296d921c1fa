package tournament

import (
	"errors"
	"testing"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
)

func sampleSnapshot(t *testing.T) Snapshot {
	t.Helper()
	teams := append(sampleGroupOne(t), team.Team{Name: "Omega", RegistrationDate: mustDate(t, "15/06"), Group: 2})
	matches := []match.Match{
		{ID: 10, TeamA: "Alpha", TeamB: "Beta", GoalsA: 3, GoalsB: 1},
		{ID: 11, TeamA: "Gamma", TeamB: "Delta", GoalsA: 0, GoalsB: 0},
	}
	return NewSnapshot(teams, matches)
}

func TestSnapshot_Predicates(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot(t)

	if !s.TeamExists("Alpha") || s.TeamExists("alpha") {
		t.Fatalf("TeamExists must match exact names")
	}
	if !s.MatchExists(10) || s.MatchExists(99) {
		t.Fatalf("unexpected MatchExists result")
	}
	if !s.SameGroup("Alpha", "Delta") {
		t.Fatalf("expected Alpha and Delta in same group")
	}
	if s.SameGroup("Alpha", "Omega") {
		t.Fatalf("expected Alpha and Omega in different groups")
	}
	if s.SameGroup("Alpha", "Ghost") || s.SameGroup("Ghost", "Ghost") {
		t.Fatalf("SameGroup must fail closed on missing teams")
	}
}

func TestSnapshot_MatchAlreadyExistsIsSymmetric(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot(t)
	pairs := [][2]string{{"Alpha", "Beta"}, {"Gamma", "Delta"}, {"Alpha", "Gamma"}, {"Beta", "Omega"}}
	for _, p := range pairs {
		if s.MatchAlreadyExists(p[0], p[1]) != s.MatchAlreadyExists(p[1], p[0]) {
			t.Fatalf("pair check is not symmetric for %v", p)
		}
	}
	if !s.MatchAlreadyExists("Beta", "Alpha") {
		t.Fatalf("expected reversed pair to be found")
	}
	if s.MatchAlreadyExistsExcept("Beta", "Alpha", 10) {
		t.Fatalf("expected pair to be ignored for its own id")
	}
}

func TestSnapshot_CheckAddTeam(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot(t)

	if err := s.CheckAddTeam(team.Team{Name: "Alpha", RegistrationDate: mustDate(t, "01/02"), Group: 1}); !errors.Is(err, ErrTeamExists) {
		t.Fatalf("expected ErrTeamExists, got %v", err)
	}
	if err := s.CheckAddTeam(team.Team{Name: "Sigma", RegistrationDate: mustDate(t, "31/02"), Group: 3}); err != nil {
		t.Fatalf("expected new team to pass, got %v", err)
	}
	if err := s.CheckAddTeam(team.Team{Name: "Sigma", Group: 3}); !errors.Is(err, team.ErrInvalidRegistrationDate) {
		t.Fatalf("expected ErrInvalidRegistrationDate for missing date, got %v", err)
	}
}

func TestSnapshot_CheckAddMatch(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot(t)
	tests := []struct {
		name      string
		item      match.Match
		targetErr error
	}{
		{name: "valid", item: match.Match{TeamA: "Alpha", TeamB: "Gamma", GoalsA: 1}, targetErr: nil},
		{name: "missing team a", item: match.Match{TeamA: "Ghost", TeamB: "Gamma"}, targetErr: ErrTeamNotFound},
		{name: "missing team b", item: match.Match{TeamA: "Alpha", TeamB: "Ghost"}, targetErr: ErrTeamNotFound},
		{name: "self match", item: match.Match{TeamA: "Alpha", TeamB: "Alpha"}, targetErr: ErrSelfMatch},
		{name: "cross group", item: match.Match{TeamA: "Alpha", TeamB: "Omega"}, targetErr: ErrCrossGroupMatch},
		{name: "duplicate pair", item: match.Match{TeamA: "Alpha", TeamB: "Beta"}, targetErr: ErrDuplicateMatch},
		{name: "duplicate reversed pair", item: match.Match{TeamA: "Beta", TeamB: "Alpha"}, targetErr: ErrDuplicateMatch},
		{name: "negative goals", item: match.Match{TeamA: "Alpha", TeamB: "Gamma", GoalsB: -1}, targetErr: ErrNegativeGoals},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := s.CheckAddMatch(tc.item)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestSnapshot_CheckEditTeam(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot(t)
	d := mustDate(t, "09/09")

	if err := s.CheckEditTeam("Ghost", team.Team{Name: "Ghost", RegistrationDate: d, Group: 1}); !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
	if err := s.CheckEditTeam("Alpha", team.Team{Name: "Beta", RegistrationDate: d, Group: 1}); !errors.Is(err, ErrTeamExists) {
		t.Fatalf("expected ErrTeamExists, got %v", err)
	}
	if err := s.CheckEditTeam("Alpha", team.Team{Name: "Alpha", RegistrationDate: d, Group: 5}); err != nil {
		t.Fatalf("expected keeping the same name to pass, got %v", err)
	}
	if err := s.CheckEditTeam("Alpha", team.Team{Name: "Omega2", RegistrationDate: d, Group: 1}); err != nil {
		t.Fatalf("expected rename to free name to pass, got %v", err)
	}
}

func TestSnapshot_CheckEditMatch(t *testing.T) {
	t.Parallel()

	s := sampleSnapshot(t)

	if err := s.CheckEditMatch(match.Match{ID: 99, TeamA: "Alpha", TeamB: "Gamma"}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if err := s.CheckEditMatch(match.Match{ID: 10, TeamA: "Beta", TeamB: "Alpha", GoalsA: 2, GoalsB: 2}); err != nil {
		t.Fatalf("expected editing goals of same pair to pass, got %v", err)
	}
	if err := s.CheckEditMatch(match.Match{ID: 10, TeamA: "Gamma", TeamB: "Delta"}); !errors.Is(err, ErrDuplicateMatch) {
		t.Fatalf("expected ErrDuplicateMatch when moving onto another match's pair, got %v", err)
	}
	if err := s.CheckEditMatch(match.Match{ID: 10, TeamA: "Alpha", TeamB: "Omega"}); !errors.Is(err, ErrCrossGroupMatch) {
		t.Fatalf("expected ErrCrossGroupMatch, got %v", err)
	}
}
