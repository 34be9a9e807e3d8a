package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/betfinder/internal/config"
	"github.com/riskibarqy/betfinder/internal/domain/assistant"
	"github.com/riskibarqy/betfinder/internal/domain/competition"
	"github.com/riskibarqy/betfinder/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/betfinder/internal/infrastructure/llm/anthropic"
	cacherepo "github.com/riskibarqy/betfinder/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/betfinder/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/betfinder/internal/interfaces/httpapi"
	"github.com/riskibarqy/betfinder/internal/platform/cache"
	"github.com/riskibarqy/betfinder/internal/platform/dsn"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
	"github.com/riskibarqy/betfinder/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server
	db     *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	matchSvc, statsSvc, catalogSvc, assistantSvc := buildServices(cfg, db, logger)
	handler := httpapi.NewHandler(matchSvc, statsSvc, catalogSvc, assistantSvc, logger)

	var verifier httpapi.TokenVerifier
	if cfg.AuthEnabled {
		verifier = jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer)
	} else {
		logger.Warn("auth disabled, /v1 routes are public")
	}

	traceBodyBytes := 0
	if cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody {
		traceBodyBytes = cfg.UptraceRequestBodyMaxBytes
	}

	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, traceBodyBytes)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db: db,
	}, nil
}

func buildServices(cfg config.Config, db *sqlx.DB, logger *logging.Logger) (
	*usecase.MatchService,
	*usecase.StatsService,
	*usecase.CatalogService,
	*usecase.AssistantService,
) {
	matchRepo := postgres.NewMatchRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	competitionRepo := postgres.NewCompetitionRepository(db)
	runner := postgres.NewAssistantQueryRunner(db)

	var (
		competitions competition.Repository         = competitionRepo
		overview     competition.OverviewRepository = competitionRepo
	)
	if cfg.CacheEnabled {
		cached := cacherepo.NewCompetitionRepository(competitionRepo, competitionRepo, cache.NewStore(cfg.CacheTTL))
		competitions, overview = cached, cached
	}

	statsSvc := usecase.NewStatsService(statsRepo, usecase.StatsConfig{
		WindowSize:  cfg.StatsWindowSize,
		Concurrency: cfg.StatsConcurrency,
	}, logger.Named("stats"))
	matchSvc := usecase.NewMatchService(matchRepo, statsSvc, cfg.MatchListMaxRows)
	catalogSvc := usecase.NewCatalogService(competitions, overview)

	var llm assistant.LLM
	if client := anthropic.New(anthropic.Config{
		APIKey:         cfg.AnthropicAPIKey,
		BaseURL:        cfg.AnthropicBaseURL,
		Model:          cfg.AnthropicModel,
		MaxTokens:      cfg.AnthropicMaxTokens,
		Timeout:        cfg.AnthropicTimeout,
		MaxRetries:     cfg.AnthropicMaxRetries,
		CircuitBreaker: cfg.AnthropicCircuitBreaker(),
	}, logger); client != nil {
		llm = client
	} else {
		logger.Warn("ANTHROPIC_API_KEY is empty, assistant queries will be rejected")
	}

	assistantSvc := usecase.NewAssistantService(llm, runner, statsSvc, usecase.AssistantConfig{
		QueryTimeout:      cfg.AssistantQueryTimeout,
		DefaultLimit:      cfg.AssistantDefaultLimit,
		MaxQuestionLength: cfg.AssistantMaxQuestionLength,
	}, logger.Named("assistant"))

	return matchSvc, statsSvc, catalogSvc, assistantSvc
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dsn.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dsn.DatabaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return db, nil
}

// Ping checks the database once at startup.
func (a *App) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
