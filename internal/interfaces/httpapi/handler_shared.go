package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/group-stage/internal/domain/auditlog"
	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	"github.com/riskibarqy/group-stage/internal/usecase"
)

type teamRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Date  string `json:"date" validate:"required"`
	Group int    `json:"group" validate:"required,gt=0"`
}

// matchRequest keeps goals as pointers so a missing score is rejected
// instead of silently becoming 0.
type matchRequest struct {
	TeamA  string `json:"team_a" validate:"required,max=100"`
	TeamB  string `json:"team_b" validate:"required,max=100"`
	GoalsA *int   `json:"goals_a" validate:"required,gte=0"`
	GoalsB *int   `json:"goals_b" validate:"required,gte=0"`
}

type computeStandingsRequest struct {
	Teams   []teamRequest  `json:"teams" validate:"required,dive"`
	Matches []matchRequest `json:"matches" validate:"omitempty,dive"`
}

type logRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type teamDTO struct {
	Name             string `json:"name"`
	RegistrationDate string `json:"date"`
	Group            int    `json:"group"`
}

type matchDTO struct {
	ID     int64  `json:"id"`
	TeamA  string `json:"team_a"`
	TeamB  string `json:"team_b"`
	GoalsA int    `json:"goals_a"`
	GoalsB int    `json:"goals_b"`
}

type teamDetailDTO struct {
	Team    teamDTO    `json:"team"`
	Matches []matchDTO `json:"matches"`
}

type standingEntryDTO struct {
	Position         int    `json:"position"`
	Team             string `json:"team"`
	TotalPoints      int    `json:"total_points"`
	TotalGoals       int    `json:"total_goals"`
	AlternatePoints  int    `json:"alternate_points"`
	RegistrationDate string `json:"date"`
	Qualified        bool   `json:"qualified"`
}

type groupStandingDTO struct {
	Group   int                `json:"group"`
	Entries []standingEntryDTO `json:"entries"`
}

type logEntryDTO struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (req teamRequest) toInput() usecase.TeamInput {
	return usecase.TeamInput{
		Name:             req.Name,
		RegistrationDate: req.Date,
		Group:            req.Group,
	}
}

func (req matchRequest) toInput() usecase.MatchInput {
	input := usecase.MatchInput{
		TeamA: req.TeamA,
		TeamB: req.TeamB,
	}
	if req.GoalsA != nil {
		input.GoalsA = *req.GoalsA
	}
	if req.GoalsB != nil {
		input.GoalsB = *req.GoalsB
	}
	return input
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		Name:             v.Name,
		RegistrationDate: v.RegistrationDate.String(),
		Group:            v.Group,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:     v.ID,
		TeamA:  v.TeamA,
		TeamB:  v.TeamB,
		GoalsA: v.GoalsA,
		GoalsB: v.GoalsB,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func teamDetailToDTO(v usecase.TeamDetails) teamDetailDTO {
	return teamDetailDTO{
		Team:    teamToDTO(v.Team),
		Matches: matchesToDTO(v.Matches),
	}
}

func groupStandingToDTO(ctx context.Context, v tournament.GroupStanding) groupStandingDTO {
	_, span := startSpan(ctx, "httpapi.groupStandingToDTO")
	defer span.End()

	entries := make([]standingEntryDTO, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, standingEntryDTO{
			Position:         e.Position,
			Team:             e.Team,
			TotalPoints:      e.TotalPoints,
			TotalGoals:       e.TotalGoals,
			AlternatePoints:  e.AlternatePoints,
			RegistrationDate: e.RegistrationDate.String(),
			Qualified:        e.Qualified,
		})
	}

	return groupStandingDTO{Group: v.Group, Entries: entries}
}

func standingsToDTO(ctx context.Context, items []tournament.GroupStanding) []groupStandingDTO {
	out := make([]groupStandingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, groupStandingToDTO(ctx, item))
	}
	return out
}

func logEntryToDTO(v auditlog.Entry) logEntryDTO {
	return logEntryDTO{Message: v.Message, Timestamp: v.Timestamp}
}
