package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	basecache "github.com/riskibarqy/group-stage/internal/platform/cache"
)

const (
	teamKeyPrefix  = "team:"
	matchKeyPrefix = "match:"
)

// TeamRepository caches reads of next. Contexts marked with
// basecache.WithoutCache read through.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	if basecache.Bypassed(ctx) {
		return r.next.List(ctx)
	}
	v, err := r.cache.GetOrLoad(ctx, teamKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	if basecache.Bypassed(ctx) {
		return r.next.GetByName(ctx, name)
	}
	v, err := r.cache.GetOrLoad(ctx, teamKeyPrefix+"name:"+name, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedTeamByName{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByName)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Create(ctx, item)
}

func (r *TeamRepository) Update(ctx context.Context, oldName string, item team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.Update(ctx, oldName, item)
}

func (r *TeamRepository) DeleteAll(ctx context.Context) error {
	defer r.cache.DeletePrefix(ctx, teamKeyPrefix)
	return r.next.DeleteAll(ctx)
}

type cachedTeamByName struct {
	value  team.Team
	exists bool
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	if basecache.Bypassed(ctx) {
		return r.next.List(ctx)
	}
	v, err := r.cache.GetOrLoad(ctx, matchKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return append([]match.Match(nil), items...), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	if basecache.Bypassed(ctx) {
		return r.next.GetByID(ctx, id)
	}
	key := matchKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	return cached.value, cached.exists, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.Create(ctx, item)
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.Update(ctx, item)
}

func (r *MatchRepository) DeleteAll(ctx context.Context) error {
	defer r.cache.DeletePrefix(ctx, matchKeyPrefix)
	return r.next.DeleteAll(ctx)
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}

type transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Transactor drops cached teams and matches once a unit ends, so reads made
// while it was open cannot outlive its commit or rollback.
type Transactor struct {
	next  transactor
	cache *basecache.Store
}

func NewTransactor(next transactor, cache *basecache.Store) *Transactor {
	return &Transactor{next: next, cache: cache}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	defer func() {
		t.cache.DeletePrefix(ctx, teamKeyPrefix)
		t.cache.DeletePrefix(ctx, matchKeyPrefix)
	}()
	return t.next.WithinTx(ctx, fn)
}
