package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
	nextID  int64
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	repo := &MatchRepository{
		matches: make([]match.Match, 0, len(matches)),
	}
	for _, item := range matches {
		if item.ID > repo.nextID {
			repo.nextID = item.ID
		}
		repo.matches = append(repo.matches, item)
	}

	return repo
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	out = append(out, r.matches...)

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		return r.matches[idx], true, nil
	}

	return match.Match{}, false, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.matches {
		if existing.SamePair(item.TeamA, item.TeamB) {
			return match.Match{}, fmt.Errorf("%w: %s vs %s", tournament.ErrDuplicateMatch, item.TeamA, item.TeamB)
		}
	}

	r.nextID++
	item.ID = r.nextID
	r.matches = append(r.matches, item)

	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ID)
	if idx < 0 {
		return fmt.Errorf("%w: id=%d", tournament.ErrMatchNotFound, item.ID)
	}
	for _, existing := range r.matches {
		if existing.ID != item.ID && existing.SamePair(item.TeamA, item.TeamB) {
			return fmt.Errorf("%w: %s vs %s", tournament.ErrDuplicateMatch, item.TeamA, item.TeamB)
		}
	}
	r.matches[idx] = item

	return nil
}

// DeleteAll also restarts id assignment, matching a truncated table.
func (r *MatchRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches = nil
	r.nextID = 0
	return nil
}

func (r *MatchRepository) indexOf(id int64) int {
	for idx := range r.matches {
		if r.matches[idx].ID == id {
			return idx
		}
	}
	return -1
}
