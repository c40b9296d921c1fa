package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	"github.com/sourcegraph/conc/pool"
)

type RankingService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	rules     tournament.Rules
}

func NewRankingService(teamRepo team.Repository, matchRepo match.Repository, rules tournament.Rules) *RankingService {
	if rules.QualifiersPerGroup <= 0 {
		rules = tournament.DefaultRules()
	}

	return &RankingService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		rules:     rules,
	}
}

// GetStandings recomputes every group table from the stored teams and matches.
func (s *RankingService) GetStandings(ctx context.Context) ([]tournament.GroupStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.GetStandings")
	defer span.End()

	var (
		teams   []team.Team
		matches []match.Match
	)

	loaders := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams = items
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		matches = items
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return nil, err
	}

	return tournament.Standings(teams, matches, s.rules), nil
}

func (s *RankingService) GetGroupStanding(ctx context.Context, group int) (tournament.GroupStanding, error) {
	if group <= 0 {
		return tournament.GroupStanding{}, fmt.Errorf("%w: group must be positive", ErrInvalidInput)
	}

	standings, err := s.GetStandings(ctx)
	if err != nil {
		return tournament.GroupStanding{}, err
	}

	for _, item := range standings {
		if item.Group == group {
			return item, nil
		}
	}

	return tournament.GroupStanding{}, fmt.Errorf("%w: group=%d", ErrNotFound, group)
}

// ComputeStandings ranks a caller supplied tournament without touching the
// stores. Matches are taken as given; stale ones are skipped by the engine.
func (s *RankingService) ComputeStandings(ctx context.Context, teams []TeamInput, matches []MatchInput) ([]tournament.GroupStanding, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.ComputeStandings")
	defer span.End()

	teamItems := make([]team.Team, 0, len(teams))
	for idx, input := range teams {
		item, err := teamFromInput(input)
		if err != nil {
			return nil, fmt.Errorf("teams[%d]: %w", idx, err)
		}
		teamItems = append(teamItems, item)
	}

	matchItems := make([]match.Match, 0, len(matches))
	for idx, input := range matches {
		item := match.Match{
			ID:     int64(idx + 1),
			TeamA:  strings.TrimSpace(input.TeamA),
			TeamB:  strings.TrimSpace(input.TeamB),
			GoalsA: input.GoalsA,
			GoalsB: input.GoalsB,
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: matches[%d]: %v", ErrInvalidInput, idx, err)
		}
		matchItems = append(matchItems, item)
	}

	return tournament.Standings(teamItems, matchItems, s.rules), nil
}
