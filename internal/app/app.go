package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/group-stage/internal/config"
	"github.com/riskibarqy/group-stage/internal/domain/auditlog"
	"github.com/riskibarqy/group-stage/internal/domain/match"
	"github.com/riskibarqy/group-stage/internal/domain/team"
	"github.com/riskibarqy/group-stage/internal/domain/tournament"
	cacherepo "github.com/riskibarqy/group-stage/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/group-stage/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/group-stage/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/group-stage/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/group-stage/internal/platform/cache"
	"github.com/riskibarqy/group-stage/internal/platform/logging"
	"github.com/riskibarqy/group-stage/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// repositories holds the store both as configured (possibly cached) and as
// the underlying store. Rankings read the store directly.
type repositories struct {
	teams        team.Repository
	matches      match.Repository
	storeTeams   team.Repository
	storeMatches match.Repository
	logs         auditlog.Repository
	tx           usecase.Transactor
	close        func() error
}

// NewHTTPServer wires the configured store, services and router. The returned
// close func releases the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := newHandler(repos, rankingRules(cfg), logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

// rankingRules applies the configured scoring. A Config not built by
// config.Load (no win points, no qualifiers) keeps the defaults.
func rankingRules(cfg config.Config) tournament.Rules {
	rules := tournament.DefaultRules()
	if cfg.RankingWinPoints == 0 && cfg.RankingQualifiersPerGroup == 0 {
		return rules
	}
	rules.WinPoints = cfg.RankingWinPoints
	rules.DrawPoints = cfg.RankingDrawPoints
	rules.LossPoints = cfg.RankingLossPoints
	rules.QualifiersPerGroup = cfg.RankingQualifiersPerGroup
	return rules
}

func newHandler(repos repositories, rules tournament.Rules, logger *logging.Logger) *httpapi.Handler {
	auditSvc := usecase.NewAuditLogService(repos.logs)
	// Team and match writes share one guard so validate-then-write never
	// interleaves across the two services.
	guard := usecase.NewWriteGuard()

	return httpapi.NewHandler(
		usecase.NewTeamService(repos.teams, repos.matches, guard, repos.tx, auditSvc, logger.Named("usecase.team")),
		usecase.NewMatchService(repos.teams, repos.matches, guard, auditSvc, logger.Named("usecase.match")),
		usecase.NewRankingService(repos.storeTeams, repos.storeMatches, rules),
		auditSvc,
		logger,
	)
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, err
			}
		}
		repos = repositories{
			teams:   postgres.NewTeamRepository(db),
			matches: postgres.NewMatchRepository(db),
			logs:    postgres.NewAuditLogRepository(db),
			tx:      postgres.NewTransactor(db),
			close:   db.Close,
		}
	default:
		var seedTeams []team.Team
		var seedMatches []match.Match
		if cfg.SeedDemoData {
			seedTeams, seedMatches = memory.SeedTeams(), memory.SeedMatches()
		}
		teams := memory.NewTeamRepository(seedTeams)
		matches := memory.NewMatchRepository(seedMatches)
		repos = repositories{
			teams:   teams,
			matches: matches,
			logs:    memory.NewAuditLogRepository(),
			tx:      memory.NewTransactor(teams, matches),
			close:   func() error { return nil },
		}
	}
	repos.storeTeams, repos.storeMatches = repos.teams, repos.matches

	// Cached reads serve the plain GET endpoints; guarded write checks read
	// through (see usecase.WriteGuard).
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
		repos.tx = cacherepo.NewTransactor(repos.tx, store)
	}

	logger.Info("repositories ready",
		"storage", cfg.StorageBackend,
		"seeded", cfg.SeedDemoData,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL.String(),
	)

	return repos, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
