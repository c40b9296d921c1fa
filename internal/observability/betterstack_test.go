package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/group-stage/internal/config"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
)

func TestInitBetterStackLogger_SendsErrorLog(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	requestCount := 0
	var lastAuth string
	var shipped []map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		requestCount++
		lastAuth = r.Header.Get("Authorization")
		var batch []map[string]any
		_ = sonic.Unmarshal(raw, &batch)
		shipped = append(shipped, batch...)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	baseLogger := logging.NewNop()
	cfg := config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: server.URL,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelError,
		ServiceName:         "group-stage-api",
		AppEnv:              config.EnvDev,
	}

	logger, shutdown, err := InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.ErrorContext(context.Background(), "list matches failed", "component", "httpapi")
	logger.ErrorContext(context.Background(), "list teams failed", "component", "httpapi")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requestCount == 0 {
		t.Fatalf("expected Better Stack endpoint to receive at least 1 request")
	}
	if lastAuth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", lastAuth)
	}
	if len(shipped) != 2 {
		t.Fatalf("expected both entries shipped, got %+v", shipped)
	}
	if shipped[0]["message"] != "list matches failed" || shipped[0]["service"] != "group-stage-api" {
		t.Fatalf("unexpected shipped payload: %+v", shipped[0])
	}
	if shipped[1]["message"] != "list teams failed" {
		t.Fatalf("unexpected second entry: %+v", shipped[1])
	}
}

func TestInitBetterStackLogger_RespectsMinLevel(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestCount++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	baseLogger := logging.NewNop()
	cfg := config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: server.URL,
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelError,
		ServiceName:         "group-stage-api",
		AppEnv:              config.EnvDev,
	}

	logger, shutdown, err := InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.InfoContext(context.Background(), "info log should not be shipped")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requestCount != 0 {
		t.Fatalf("expected no request for info log, got %d", requestCount)
	}
}

func TestBetterStackWriteSyncer_BatchesEntries(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var batch []map[string]any
		if err := sonic.Unmarshal(raw, &batch); err != nil {
			t.Errorf("payload is not a JSON array: %s", raw)
		}
		mu.Lock()
		batchSizes = append(batchSizes, len(batch))
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	syncer := newBetterStackWriteSyncer(server.URL, "", time.Second)
	for i := 0; i < 150; i++ {
		if _, err := syncer.Write([]byte(`{"message":"entry"}` + "\n")); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	_, _ = syncer.Write([]byte("   \n"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := syncer.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	total := 0
	for _, size := range batchSizes {
		if size > betterStackBatchSize {
			t.Fatalf("batch of %d exceeds limit", size)
		}
		total += size
	}
	if total != 150 {
		t.Fatalf("expected 150 shipped entries, got %d in %v", total, batchSizes)
	}

	if n, err := syncer.Write([]byte(`{"message":"late"}`)); err != nil || n == 0 {
		t.Fatalf("write after close should be a silent no-op, n=%d err=%v", n, err)
	}
}
