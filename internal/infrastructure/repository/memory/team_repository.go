package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
)

// TeamRepository keeps teams in registration order.
type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	rows := make([]team.Team, 0, len(teams))
	rows = append(rows, teams...)

	return &TeamRepository{teams: rows}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)

	return out, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(name); idx >= 0 {
		return r.teams[idx], true, nil
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(item.Name) >= 0 {
		return fmt.Errorf("%w: %s", tournament.ErrTeamExists, item.Name)
	}
	r.teams = append(r.teams, item)

	return nil
}

func (r *TeamRepository) Update(_ context.Context, oldName string, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(oldName)
	if idx < 0 {
		return fmt.Errorf("%w: %s", tournament.ErrTeamNotFound, oldName)
	}
	if item.Name != oldName && r.indexOf(item.Name) >= 0 {
		return fmt.Errorf("%w: %s", tournament.ErrTeamExists, item.Name)
	}
	r.teams[idx] = item

	return nil
}

func (r *TeamRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams = nil
	return nil
}

func (r *TeamRepository) indexOf(name string) int {
	for idx := range r.teams {
		if r.teams[idx].Name == name {
			return idx
		}
	}
	return -1
}
