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

type TeamInput struct {
	Name             string
	RegistrationDate string
	Group            int
}

type TeamDetails struct {
	Team    team.Team
	Matches []match.Match
}

type TeamService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	guard     *WriteGuard
	tx        Transactor
	audit     AuditRecorder
	logger    *logging.Logger
}

func NewTeamService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	guard *WriteGuard,
	tx Transactor,
	audit AuditRecorder,
	logger *logging.Logger,
) *TeamService {
	if guard == nil {
		guard = NewWriteGuard()
	}
	if tx == nil {
		tx = directTransactor{}
	}
	if audit == nil {
		audit = noopAuditRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		guard:     guard,
		tx:        tx,
		audit:     audit,
		logger:    logger,
	}
}

func (s *TeamService) RegisterTeam(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RegisterTeam")
	defer span.End()

	item, err := teamFromInput(input)
	if err != nil {
		return team.Team{}, err
	}

	err = s.guard.Do(ctx, func(ctx context.Context) error {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}

		if err := tournament.NewSnapshot(teams, nil).CheckAddTeam(item); err != nil {
			return classifyRefusal(err)
		}

		if err := s.teamRepo.Create(ctx, item); err != nil {
			return fmt.Errorf("create team: %w", wrapStoreRefusal(err))
		}
		return nil
	})
	if err != nil {
		annotateSpan(span, err)
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team registered", "team", item.Name, "group", item.Group)
	recordAudit(ctx, s.audit, s.logger, fmt.Sprintf("Team '%s' added to group %d", item.Name, item.Group))
	return item, nil
}

// EditTeam replaces a team. A rename is propagated to every match that
// references the old name; the match edits and the team update commit as
// one unit.
func (s *TeamService) EditTeam(ctx context.Context, oldName string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.EditTeam")
	defer span.End()

	oldName = strings.TrimSpace(oldName)
	if oldName == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	item, err := teamFromInput(input)
	if err != nil {
		return team.Team{}, err
	}

	var cascaded int
	err = s.guard.Do(ctx, func(ctx context.Context) error {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		matches, err := s.matchRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}

		if err := tournament.NewSnapshot(teams, matches).CheckEditTeam(oldName, item); err != nil {
			return classifyRefusal(err)
		}

		edits := tournament.RenameCascade(oldName, item.Name, matches)
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			for _, edit := range edits {
				if err := s.matchRepo.Update(ctx, edit); err != nil {
					return fmt.Errorf("cascade rename to match %d: %w", edit.ID, err)
				}
			}
			if err := s.teamRepo.Update(ctx, oldName, item); err != nil {
				return fmt.Errorf("update team: %w", wrapStoreRefusal(err))
			}
			return nil
		})
		if err != nil {
			return err
		}

		cascaded = len(edits)
		return nil
	})
	if err != nil {
		annotateSpan(span, err)
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team updated",
		"old_name", oldName,
		"team", item.Name,
		"group", item.Group,
		"cascaded_matches", cascaded,
	)
	recordAudit(ctx, s.audit, s.logger, fmt.Sprintf("Team '%s' updated to '%s'", oldName, item.Name))
	return item, nil
}

func (s *TeamService) GetTeamDetails(ctx context.Context, name string) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamDetails")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return TeamDetails{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("get team by name: %w", err)
	}
	if !exists {
		return TeamDetails{}, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("list matches: %w", err)
	}

	played := make([]match.Match, 0)
	for _, m := range matches {
		if m.Involves(item.Name) {
			played = append(played, m)
		}
	}

	return TeamDetails{Team: item, Matches: played}, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

// ClearAll removes every match and then every team in one unit. The audit
// log is kept.
func (s *TeamService) ClearAll(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ClearAll")
	defer span.End()

	err := s.guard.Do(ctx, func(ctx context.Context) error {
		return s.tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.matchRepo.DeleteAll(ctx); err != nil {
				return fmt.Errorf("delete all matches: %w", err)
			}
			if err := s.teamRepo.DeleteAll(ctx); err != nil {
				return fmt.Errorf("delete all teams: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		annotateSpan(span, err)
		return err
	}

	s.logger.InfoContext(ctx, "tournament data cleared")
	recordAudit(ctx, s.audit, s.logger, "All teams and matches deleted")
	return nil
}

func teamFromInput(input TeamInput) (team.Team, error) {
	date, err := team.ParseRegistrationDate(input.RegistrationDate)
	if err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	item := team.Team{
		Name:             strings.TrimSpace(input.Name),
		RegistrationDate: date,
		Group:            input.Group,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return item, nil
}

// wrapStoreRefusal classifies uniqueness refusals raised by the store itself,
// which stays authoritative when several processes write.
func wrapStoreRefusal(err error) error {
	if err == nil {
		return nil
	}
	if isRefusal(err) {
		return classifyRefusal(err)
	}
	return err
}
