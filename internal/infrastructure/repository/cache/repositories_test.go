package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/group-stage/internal/platform/cache"
)

type countingTeamRepository struct {
	*memory.TeamRepository
	listCalls int
}

func (r *countingTeamRepository) List(ctx context.Context) ([]team.Team, error) {
	r.listCalls++
	return r.TeamRepository.List(ctx)
}

func TestTeamRepository_CachesListUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingTeamRepository{TeamRepository: memory.NewTeamRepository(memory.SeedTeams())}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := repo.List(ctx); err != nil {
			t.Fatalf("list teams: %v", err)
		}
	}
	if next.listCalls != 1 {
		t.Fatalf("expected one backend list call, got %d", next.listCalls)
	}

	if err := repo.Update(ctx, "Alpha", team.Team{Name: "Omega", RegistrationDate: team.RegistrationDate{Day: 1, Month: 1}, Group: 1}); err != nil {
		t.Fatalf("update team: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams after update: %v", err)
	}
	if next.listCalls != 2 {
		t.Fatalf("expected write to invalidate list cache, got %d calls", next.listCalls)
	}
	if items[0].Name != "Omega" {
		t.Fatalf("expected renamed team, got %+v", items[0])
	}
	if _, exists, _ := repo.GetByName(ctx, "Alpha"); exists {
		t.Fatalf("expected stale name lookup to be invalidated")
	}
}

func TestMatchRepository_InvalidatesOnCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository(memory.NewMatchRepository(nil), basecache.NewStore(time.Minute))

	if _, exists, err := repo.GetByID(ctx, 1); err != nil || exists {
		t.Fatalf("expected empty store, exists=%t err=%v", exists, err)
	}

	created, err := repo.Create(ctx, match.Match{TeamA: "Alpha", TeamB: "Beta", GoalsA: 1})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	got, exists, err := repo.GetByID(ctx, created.ID)
	if err != nil || !exists {
		t.Fatalf("expected created match to be visible, exists=%t err=%v", exists, err)
	}
	if got.TeamA != "Alpha" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestTeamRepository_WithoutCacheReadsThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingTeamRepository{TeamRepository: memory.NewTeamRepository(memory.SeedTeams())}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	// A write that bypasses this decorator, as another process would.
	if err := next.DeleteAll(ctx); err != nil {
		t.Fatalf("delete teams: %v", err)
	}

	cached, err := repo.List(ctx)
	if err != nil || len(cached) == 0 {
		t.Fatalf("expected cached list to still hold teams, got %d err=%v", len(cached), err)
	}
	fresh, err := repo.List(basecache.WithoutCache(ctx))
	if err != nil {
		t.Fatalf("list without cache: %v", err)
	}
	if len(fresh) != 0 {
		t.Fatalf("expected read-through list to see the delete, got %+v", fresh)
	}
	if next.listCalls != 2 {
		t.Fatalf("expected a second backend call, got %d", next.listCalls)
	}
}

func TestTransactor_InvalidatesAfterUnit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := basecache.NewStore(time.Minute)
	teams := memory.NewTeamRepository(memory.SeedTeams())
	matches := memory.NewMatchRepository(memory.SeedMatches())
	cachedTeams := NewTeamRepository(teams, store)

	err := NewTransactor(memory.NewTransactor(teams, matches), store).WithinTx(ctx, func(ctx context.Context) error {
		if err := teams.DeleteAll(ctx); err != nil {
			return err
		}
		// A reader outside the unit caches what it sees mid-unit.
		_, err := cachedTeams.List(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected cache emptied after the unit, len=%d", store.Len())
	}
}
