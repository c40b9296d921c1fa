package usecase

import (
	"context"

	basecache "github.com/riskibarqy/group-stage/internal/platform/cache"
)

// WriteGuard serializes validate-then-write sequences so two writers never
// validate against the same snapshot. Build it with NewWriteGuard.
type WriteGuard struct {
	slot chan struct{}
}

func NewWriteGuard() *WriteGuard {
	return &WriteGuard{slot: make(chan struct{}, 1)}
}

// Do runs fn while holding the guard, returning ctx.Err() if ctx is done
// before the guard is acquired. fn reads bypass repository caches so its
// checks see the store as it is.
func (g *WriteGuard) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case g.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.slot }()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(basecache.WithoutCache(ctx))
}
