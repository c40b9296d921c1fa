package memory

import (
	"context"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
)

type txKey struct{}

// Transactor makes a unit of team and match writes all-or-nothing: when fn
// fails both repositories are restored to their state before it began.
// Concurrent writers must be serialized by the caller.
type Transactor struct {
	teams   *TeamRepository
	matches *MatchRepository
}

func NewTransactor(teams *TeamRepository, matches *MatchRepository) *Transactor {
	return &Transactor{teams: teams, matches: matches}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx, _ := ctx.Value(txKey{}).(bool); inTx {
		return fn(ctx)
	}

	teams := t.teams.snapshot()
	matches, nextID := t.matches.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.teams.restore(teams)
		t.matches.restore(matches, nextID)
		return err
	}

	return nil
}

func (r *TeamRepository) snapshot() []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]team.Team(nil), r.teams...)
}

func (r *TeamRepository) restore(rows []team.Team) {
	r.mu.Lock()
	r.teams = rows
	r.mu.Unlock()
}

func (r *MatchRepository) snapshot() ([]match.Match, int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]match.Match(nil), r.matches...), r.nextID
}

func (r *MatchRepository) restore(rows []match.Match, nextID int64) {
	r.mu.Lock()
	r.matches = rows
	r.nextID = nextID
	r.mu.Unlock()
}
