package tournament

import (
	"fmt"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
)

// Snapshot is a read-only view over the caller's current teams and matches.
// Its checks only decide; they never mutate or persist anything.
type Snapshot struct {
	teams   map[string]team.Team
	matches []match.Match
	ids     map[int64]struct{}
}

func NewSnapshot(teams []team.Team, matches []match.Match) Snapshot {
	byName := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		if _, exists := byName[item.Name]; exists {
			continue
		}
		byName[item.Name] = item
	}

	ids := make(map[int64]struct{}, len(matches))
	for _, item := range matches {
		ids[item.ID] = struct{}{}
	}

	return Snapshot{
		teams:   byName,
		matches: matches,
		ids:     ids,
	}
}

func (s Snapshot) TeamExists(name string) bool {
	_, ok := s.teams[name]
	return ok
}

func (s Snapshot) MatchExists(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// SameGroup fails closed: a missing team is never in the same group.
func (s Snapshot) SameGroup(a, b string) bool {
	teamA, okA := s.teams[a]
	teamB, okB := s.teams[b]
	if !okA || !okB {
		return false
	}
	return teamA.Group == teamB.Group
}

// MatchAlreadyExists reports whether a and b already met, in either order.
func (s Snapshot) MatchAlreadyExists(a, b string) bool {
	for _, item := range s.matches {
		if item.SamePair(a, b) {
			return true
		}
	}
	return false
}

// MatchAlreadyExistsExcept is MatchAlreadyExists ignoring the match with the given id.
func (s Snapshot) MatchAlreadyExistsExcept(a, b string, id int64) bool {
	for _, item := range s.matches {
		if item.ID == id {
			continue
		}
		if item.SamePair(a, b) {
			return true
		}
	}
	return false
}

func (s Snapshot) CheckAddTeam(item team.Team) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if s.TeamExists(item.Name) {
		return fmt.Errorf("%w: %s", ErrTeamExists, item.Name)
	}
	return nil
}

func (s Snapshot) CheckEditTeam(oldName string, item team.Team) error {
	if !s.TeamExists(oldName) {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, oldName)
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if item.Name != oldName && s.TeamExists(item.Name) {
		return fmt.Errorf("%w: %s", ErrTeamExists, item.Name)
	}
	return nil
}

func (s Snapshot) CheckAddMatch(item match.Match) error {
	if err := s.checkMatchTeams(item); err != nil {
		return err
	}
	if s.MatchAlreadyExists(item.TeamA, item.TeamB) {
		return fmt.Errorf("%w: %s vs %s", ErrDuplicateMatch, item.TeamA, item.TeamB)
	}
	return nil
}

func (s Snapshot) CheckEditMatch(item match.Match) error {
	if !s.MatchExists(item.ID) {
		return fmt.Errorf("%w: id=%d", ErrMatchNotFound, item.ID)
	}
	if err := s.checkMatchTeams(item); err != nil {
		return err
	}
	if s.MatchAlreadyExistsExcept(item.TeamA, item.TeamB, item.ID) {
		return fmt.Errorf("%w: %s vs %s", ErrDuplicateMatch, item.TeamA, item.TeamB)
	}
	return nil
}

func (s Snapshot) checkMatchTeams(item match.Match) error {
	if item.GoalsA < 0 || item.GoalsB < 0 {
		return fmt.Errorf("%w: %d-%d", ErrNegativeGoals, item.GoalsA, item.GoalsB)
	}
	if !s.TeamExists(item.TeamA) {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, item.TeamA)
	}
	if !s.TeamExists(item.TeamB) {
		return fmt.Errorf("%w: %s", ErrTeamNotFound, item.TeamB)
	}
	if item.TeamA == item.TeamB {
		return fmt.Errorf("%w: %s", ErrSelfMatch, item.TeamA)
	}
	if !s.SameGroup(item.TeamA, item.TeamB) {
		return fmt.Errorf("%w: %s and %s", ErrCrossGroupMatch, item.TeamA, item.TeamB)
	}
	return nil
}
