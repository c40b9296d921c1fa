package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	matchmock "github.com/riskibarqy/group-stage/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/group-stage/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestRankingService_GetStandings_UsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	teamRepo.
		On("List", mock.Anything).
		Return(seededTeams(), nil).
		Once()
	matchRepo.
		On("List", mock.Anything).
		Return([]match.Match{
			{ID: 1, TeamA: "Alpha", TeamB: "Beta", GoalsA: 3, GoalsB: 1},
			{ID: 2, TeamA: "Gamma", TeamB: "Delta", GoalsA: 0, GoalsB: 0},
		}, nil).
		Once()

	service := NewRankingService(teamRepo, matchRepo, tournament.DefaultRules())
	got, err := service.GetStandings(context.Background())
	if err != nil {
		t.Fatalf("get standings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(got))
	}

	first := got[0].Entries
	if first[0].Team != "Alpha" || first[0].TotalPoints != 3 || first[0].AlternatePoints != 5 {
		t.Fatalf("unexpected leader: %+v", first[0])
	}
	if first[3].Team != "Beta" || !first[3].Qualified {
		t.Fatalf("unexpected last row: %+v", first[3])
	}
	if got[1].Group != 2 || len(got[1].Entries) != 1 || !got[1].Entries[0].Qualified {
		t.Fatalf("unexpected group 2: %+v", got[1])
	}
}

func TestRankingService_GetStandings_LoadFailureUsingMockery(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)

	teamRepo.
		On("List", mock.Anything).
		Return(nil, errStoreDown).
		Once()
	matchRepo.
		On("List", mock.Anything).
		Return([]match.Match{}, nil).
		Maybe()

	service := NewRankingService(teamRepo, matchRepo, tournament.DefaultRules())
	if _, err := service.GetStandings(context.Background()); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRankingService_GetGroupStanding(t *testing.T) {
	t.Parallel()

	service := NewRankingService(
		&stubTeamRepository{items: seededTeams()},
		&stubMatchRepository{},
		tournament.Rules{},
	)

	got, err := service.GetGroupStanding(context.Background(), 2)
	if err != nil {
		t.Fatalf("get group standing: %v", err)
	}
	if got.Group != 2 || got.Entries[0].Team != "Omega" {
		t.Fatalf("unexpected group standing: %+v", got)
	}

	if _, err := service.GetGroupStanding(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetGroupStanding(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRankingService_ComputeStandings(t *testing.T) {
	t.Parallel()

	service := NewRankingService(nil, nil, tournament.DefaultRules())
	teams := []TeamInput{
		{Name: "Late", RegistrationDate: "01/12", Group: 1},
		{Name: "Early", RegistrationDate: "28/02", Group: 1},
	}
	matches := []MatchInput{{TeamA: "Late", TeamB: "Early", GoalsA: 1, GoalsB: 1}}

	got, err := service.ComputeStandings(context.Background(), teams, matches)
	if err != nil {
		t.Fatalf("compute standings: %v", err)
	}
	if got[0].Entries[0].Team != "Early" {
		t.Fatalf("expected earlier registration to lead a full tie, got %+v", got[0].Entries)
	}

	_, err = service.ComputeStandings(context.Background(), []TeamInput{{Name: "Bad", RegistrationDate: "99/99", Group: 1}}, nil)
	if !errors.Is(err, team.ErrInvalidRegistrationDate) {
		t.Fatalf("expected ErrInvalidRegistrationDate, got %v", err)
	}

	_, err = service.ComputeStandings(context.Background(), teams, []MatchInput{{TeamA: "Late", TeamB: "Early", GoalsA: -2}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative goals, got %v", err)
	}
}
