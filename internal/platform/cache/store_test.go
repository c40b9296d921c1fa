package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"Alpha", "Beta"}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "team:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.([]string); len(got) != 2 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_InvalidationDuringLoadSkipsWriteBack(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	v, err := store.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		store.DeletePrefix(ctx, "team:")
		return "stale", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if v != "stale" {
		t.Fatalf("expected loaded value to be returned, got %v", v)
	}
	if _, ok := store.Get(ctx, "team:list"); ok {
		t.Fatalf("expected value loaded across an invalidation not to be cached")
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Second)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "match:id:1", "m1")
	if _, ok := store.Get(context.Background(), "match:id:1"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := store.Get(context.Background(), "match:id:1"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", store.Len())
	}
}

func TestStore_DeletePrefixOnlyRemovesMatchingKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "team:list", 1)
	store.Set(ctx, "team:name:Alpha", 2)
	store.Set(ctx, "match:list", 3)

	store.DeletePrefix(ctx, "team:")

	if store.Len() != 1 {
		t.Fatalf("expected only match entry to remain, len=%d", store.Len())
	}
	if _, ok := store.Get(ctx, "match:list"); !ok {
		t.Fatalf("expected match entry to survive")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("store down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil || v != "ok" {
		t.Fatalf("expected retry to load, got %v %v", v, err)
	}
}

func TestStore_ReadAfterInvalidationDoesNotJoinOlderLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan any, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "team:list", func(context.Context) (any, error) {
			close(started)
			<-release
			return "before-write", nil
		})
		firstDone <- v
	}()

	<-started
	store.DeletePrefix(ctx, "team:")

	v, err := store.GetOrLoad(ctx, "team:list", func(context.Context) (any, error) {
		return "after-write", nil
	})
	close(release)
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if v != "after-write" {
		t.Fatalf("read issued after invalidation returned %v", v)
	}
	if got := <-firstDone; got != "before-write" {
		t.Fatalf("first load returned %v", got)
	}
	if cached, ok := store.Get(ctx, "team:list"); !ok || cached != "after-write" {
		t.Fatalf("expected fresh value cached, got %v ok=%v", cached, ok)
	}
}

func TestWithoutCache(t *testing.T) {
	t.Parallel()

	if Bypassed(context.Background()) {
		t.Fatalf("plain context should not bypass the cache")
	}
	if !Bypassed(WithoutCache(context.Background())) {
		t.Fatalf("marked context should bypass the cache")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
