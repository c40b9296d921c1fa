package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
)

type MatchInput struct {
	TeamA  string
	TeamB  string
	GoalsA int
	GoalsB int
}

type MatchService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	guard     *WriteGuard
	audit     AuditRecorder
	logger    *logging.Logger
}

func NewMatchService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	guard *WriteGuard,
	audit AuditRecorder,
	logger *logging.Logger,
) *MatchService {
	if guard == nil {
		guard = NewWriteGuard()
	}
	if audit == nil {
		audit = noopAuditRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		guard:     guard,
		audit:     audit,
		logger:    logger,
	}
}

func (s *MatchService) AddMatch(ctx context.Context, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddMatch")
	defer span.End()

	item, err := matchFromInput(0, input)
	if err != nil {
		return match.Match{}, err
	}

	var created match.Match
	err = s.guard.Do(ctx, func(ctx context.Context) error {
		snapshot, err := s.snapshot(ctx)
		if err != nil {
			return err
		}
		if err := snapshot.CheckAddMatch(item); err != nil {
			return classifyRefusal(err)
		}

		created, err = s.matchRepo.Create(ctx, item)
		if err != nil {
			return fmt.Errorf("create match: %w", wrapStoreRefusal(err))
		}
		return nil
	})
	if err != nil {
		annotateSpan(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match added",
		"match_id", created.ID,
		"team_a", created.TeamA,
		"team_b", created.TeamB,
		"score", fmt.Sprintf("%d-%d", created.GoalsA, created.GoalsB),
	)
	recordAudit(ctx, s.audit, s.logger, fmt.Sprintf("Match between '%s' and '%s' added", created.TeamA, created.TeamB))
	return created, nil
}

func (s *MatchService) EditMatch(ctx context.Context, id int64, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.EditMatch")
	defer span.End()

	if id <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	item, err := matchFromInput(id, input)
	if err != nil {
		return match.Match{}, err
	}

	err = s.guard.Do(ctx, func(ctx context.Context) error {
		snapshot, err := s.snapshot(ctx)
		if err != nil {
			return err
		}
		if err := snapshot.CheckEditMatch(item); err != nil {
			return classifyRefusal(err)
		}

		if err := s.matchRepo.Update(ctx, item); err != nil {
			return fmt.Errorf("update match: %w", wrapStoreRefusal(err))
		}
		return nil
	})
	if err != nil {
		annotateSpan(span, err)
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match updated", "match_id", item.ID)
	recordAudit(ctx, s.audit, s.logger, fmt.Sprintf("Match %d updated", item.ID))
	return item, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	if id <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	return item, nil
}

func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return items, nil
}

func (s *MatchService) snapshot(ctx context.Context) (tournament.Snapshot, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return tournament.Snapshot{}, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return tournament.Snapshot{}, fmt.Errorf("list matches: %w", err)
	}

	return tournament.NewSnapshot(teams, matches), nil
}

// matchFromInput rejects blank names only; everything else is left to the
// snapshot checks so refusals carry their engine sentinel.
func matchFromInput(id int64, input MatchInput) (match.Match, error) {
	item := match.Match{
		ID:     id,
		TeamA:  strings.TrimSpace(input.TeamA),
		TeamB:  strings.TrimSpace(input.TeamB),
		GoalsA: input.GoalsA,
		GoalsB: input.GoalsB,
	}
	if item.TeamA == "" || item.TeamB == "" {
		return match.Match{}, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	return item, nil
}
