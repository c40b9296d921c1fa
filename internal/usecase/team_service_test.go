package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
)

func newTestTeamService(teams *stubTeamRepository, matches *stubMatchRepository, audit AuditRecorder) *TeamService {
	return NewTeamService(teams, matches, NewWriteGuard(), nil, audit, logging.NewNop())
}

func TestTeamService_RegisterTeam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     TeamInput
		targetErr error
	}{
		{name: "valid", input: TeamInput{Name: "Sigma", RegistrationDate: "31/02", Group: 3}},
		{name: "duplicate name", input: TeamInput{Name: "Alpha", RegistrationDate: "01/02", Group: 1}, targetErr: ErrConflict},
		{name: "bad date", input: TeamInput{Name: "Sigma", RegistrationDate: "32/01", Group: 1}, targetErr: ErrInvalidInput},
		{name: "blank name", input: TeamInput{Name: " ", RegistrationDate: "01/01", Group: 1}, targetErr: ErrInvalidInput},
		{name: "zero group", input: TeamInput{Name: "Sigma", RegistrationDate: "01/01", Group: 0}, targetErr: ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			teams := &stubTeamRepository{items: seededTeams()}
			audit := &stubAuditRecorder{}
			svc := newTestTeamService(teams, &stubMatchRepository{}, audit)

			got, err := svc.RegisterTeam(context.Background(), tc.input)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				if len(audit.messages) != 0 {
					t.Fatalf("refused registration must not be audited")
				}
				return
			}
			if err != nil {
				t.Fatalf("register team: %v", err)
			}
			if got.Name != "Sigma" || got.RegistrationDate.String() != "31/02" {
				t.Fatalf("unexpected team: %+v", got)
			}
			if len(audit.messages) != 1 {
				t.Fatalf("expected one audit line, got %v", audit.messages)
			}
		})
	}
}

func TestTeamService_RegisterTeam_DuplicateKeepsEngineSentinel(t *testing.T) {
	t.Parallel()

	svc := newTestTeamService(&stubTeamRepository{items: seededTeams()}, &stubMatchRepository{}, nil)
	_, err := svc.RegisterTeam(context.Background(), TeamInput{Name: "Alpha", RegistrationDate: "01/01", Group: 1})
	if !errors.Is(err, tournament.ErrTeamExists) {
		t.Fatalf("expected ErrTeamExists to stay reachable, got %v", err)
	}
}

func TestTeamService_EditTeam_RenameCascadesToMatches(t *testing.T) {
	t.Parallel()

	teams := &stubTeamRepository{items: seededTeams()[:4]}
	matches := &stubMatchRepository{items: []match.Match{
		{ID: 1, TeamA: "Alpha", TeamB: "Beta", GoalsA: 3, GoalsB: 1},
		{ID: 2, TeamA: "Gamma", TeamB: "Alpha", GoalsA: 0, GoalsB: 2},
		{ID: 3, TeamA: "Alpha", TeamB: "Delta", GoalsA: 1, GoalsB: 1},
		{ID: 4, TeamA: "Beta", TeamB: "Gamma", GoalsA: 2, GoalsB: 0},
	}}
	svc := newTestTeamService(teams, matches, nil)

	if _, err := svc.EditTeam(context.Background(), "Alpha", TeamInput{Name: "Omega", RegistrationDate: "01/01", Group: 1}); err != nil {
		t.Fatalf("edit team: %v", err)
	}

	stored, _ := matches.List(context.Background())
	omega := 0
	for _, m := range stored {
		if m.Involves("Alpha") {
			t.Fatalf("match %d still references Alpha", m.ID)
		}
		if m.Involves("Omega") {
			omega++
		}
	}
	if omega != 3 {
		t.Fatalf("expected 3 matches for Omega, got %d", omega)
	}

	details, err := svc.GetTeamDetails(context.Background(), "Omega")
	if err != nil {
		t.Fatalf("get team details: %v", err)
	}
	if len(details.Matches) != 3 {
		t.Fatalf("expected renamed team to keep its 3 matches, got %d", len(details.Matches))
	}
	if _, err := svc.GetTeamDetails(context.Background(), "Alpha"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected old name to be gone, got %v", err)
	}
}

func TestTeamService_EditTeam_Refusals(t *testing.T) {
	t.Parallel()

	svc := newTestTeamService(&stubTeamRepository{items: seededTeams()}, &stubMatchRepository{}, nil)

	if _, err := svc.EditTeam(context.Background(), "Ghost", TeamInput{Name: "Ghost", RegistrationDate: "01/01", Group: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.EditTeam(context.Background(), "Alpha", TeamInput{Name: "Beta", RegistrationDate: "01/01", Group: 1}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := svc.EditTeam(context.Background(), "Alpha", TeamInput{Name: "Alpha", RegistrationDate: "1/1", Group: 1}); !errors.Is(err, team.ErrInvalidRegistrationDate) {
		t.Fatalf("expected ErrInvalidRegistrationDate, got %v", err)
	}
}

func TestTeamService_ClearAll(t *testing.T) {
	t.Parallel()

	teams := &stubTeamRepository{items: seededTeams()}
	matches := &stubMatchRepository{items: []match.Match{{ID: 1, TeamA: "Alpha", TeamB: "Beta"}}}
	audit := &stubAuditRecorder{}
	svc := newTestTeamService(teams, matches, audit)

	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("clear all: %v", err)
	}

	remainingTeams, _ := teams.List(context.Background())
	remainingMatches, _ := matches.List(context.Background())
	if len(remainingTeams) != 0 || len(remainingMatches) != 0 {
		t.Fatalf("expected empty stores, got teams=%d matches=%d", len(remainingTeams), len(remainingMatches))
	}
	if len(audit.messages) != 1 {
		t.Fatalf("expected clear to be audited")
	}
}

func TestTeamService_AuditFailureDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	audit := &stubAuditRecorder{err: errStoreDown}
	svc := newTestTeamService(&stubTeamRepository{}, &stubMatchRepository{}, audit)

	if _, err := svc.RegisterTeam(context.Background(), TeamInput{Name: "Solo", RegistrationDate: "10/10", Group: 1}); err != nil {
		t.Fatalf("expected registration to succeed despite audit failure, got %v", err)
	}
}
