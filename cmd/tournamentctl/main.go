package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/riskibarqy/group-stage/external/tournamentapi"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
	"github.com/riskibarqy/group-stage/internal/platform/resilience"
)

const usageText = `usage: tournamentctl [flags] <command> [args]

commands:
  teams add <name> <DD/MM> <group>
  teams list
  teams get <name>
  teams edit <old-name> <name> <DD/MM> <group>
  matches add <team-a> <team-b> <goals-a> <goals-b>
  matches list
  matches get <id>
  matches edit <id> <team-a> <team-b> <goals-a> <goals-b>
  rankings [group]
  rankings compute <file.json>
  logs
  clear
  import <file.json>
`

func main() {
	fs := flag.NewFlagSet("tournamentctl", flag.ExitOnError)
	baseURL := fs.String("url", getEnv("TOURNAMENT_API_URL", "http://localhost:8080"), "tournament API base URL")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request timeout")
	retries := fs.Int("retries", 2, "retries for transient failures")
	workers := fs.Int("workers", 8, "concurrent requests used by import")
	verbose := fs.Bool("v", false, "log client diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	logger := newCLILogger(*verbose)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &cli{
		client: tournamentapi.NewClient(tournamentapi.ClientConfig{
			BaseURL:        *baseURL,
			Timeout:        *timeout,
			MaxRetries:     *retries,
			Logger:         logger,
			CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
		}),
		out:     os.Stdout,
		workers: *workers,
		logger:  logger,
	}

	if err := cli.run(ctx, fs.Args()); err != nil {
		if err == errUsage {
			fs.Usage()
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newCLILogger writes to stderr so command output on stdout stays clean.
func newCLILogger(verbose bool) *logging.Logger {
	if verbose {
		return logging.NewConsole(os.Stderr, logging.LevelDebug)
	}
	return logging.NewConsole(os.Stderr, logging.LevelError)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

