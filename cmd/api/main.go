package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsCache "session-analytics-service/internal/analytics/adapters/cache"
	analyticsHttp "session-analytics-service/internal/analytics/adapters/http/fiber"
	analyticsPg "session-analytics-service/internal/analytics/adapters/postgres"
	analyticsRemote "session-analytics-service/internal/analytics/adapters/remote"
	analyticsPorts "session-analytics-service/internal/analytics/core/ports"
	analyticsUsecase "session-analytics-service/internal/analytics/core/usecase"

	sessionsHttp "session-analytics-service/internal/sessions/adapters/http/fiber"
	sessionsPg "session-analytics-service/internal/sessions/adapters/postgres"
	sessionsUsecase "session-analytics-service/internal/sessions/core/usecase"

	"session-analytics-service/internal/platform/config"
	"session-analytics-service/internal/platform/health"
	"session-analytics-service/internal/platform/logging"
	"session-analytics-service/internal/platform/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "session-analytics-service/docs"
)

// @title Session Analytics API
// @version 1.0
// @description Dashboard analytics over neurofeedback, meditation, questionary and performance sessions.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", false)
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	schemas, err := config.LoadSchemas(cfg.SchemaFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load schemas")
	}

	metrics := observability.NewMetrics()
	checks := health.NewHandler(5 * time.Second)

	// DB connection
	var db *sql.DB
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open postgres")
		}
		defer db.Close()

		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if err := db.Ping(); err != nil {
			logger.Fatal().Err(err).Msg("failed to ping postgres")
		}
		checks.Add("database", db.PingContext)
	}

	// Session source
	var source analyticsPorts.SessionSourcePort
	switch cfg.Source {
	case config.SourceRemote:
		source = analyticsRemote.NewSessionSource(cfg.RemoteBaseURL, cfg.RemoteTimeout)
	default:
		source = analyticsPg.NewSessionSource(analyticsPg.NewSQLDB(db))
	}

	var collectionCache *analyticsCache.SessionSource
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		checks.Add("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

		collectionCache = analyticsCache.NewSessionSource(source, rdb, cfg.CacheTTL,
			analyticsCache.WithRecorder(metrics),
			analyticsCache.WithLogger(logger.With().Str("component", "cache").Logger()),
		)
		source = collectionCache
	}

	// Usecases
	dashboardUC := analyticsUsecase.NewDashboardUseCase(source, analyticsUsecase.Options{
		Schemas:  schemas,
		Location: cfg.Location,
		Months:   cfg.MonthLabels,
		Order:    cfg.BucketOrder,
		Logger:   logger.With().Str("component", "dashboard").Logger(),
		Metrics:  metrics,
	})

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(logging.Middleware(logger))
	app.Use(metrics.Middleware())

	analyticsHttp.NewAnalyticsHandler(dashboardUC).Register(app.Group("/analytics"))

	// Ingestion writes to postgres; it is only mounted when a DSN is configured.
	if db != nil {
		opts := []sessionsUsecase.Option{
			sessionsUsecase.WithRecorder(metrics),
			sessionsUsecase.WithLogger(logger.With().Str("component", "sessions").Logger()),
		}
		if collectionCache != nil {
			opts = append(opts, sessionsUsecase.WithInvalidator(collectionCache))
		}
		sessionRepository := sessionsPg.NewSessionRepository(sessionsPg.NewSQLDB(db))
		storeSessionUC := sessionsUsecase.NewStoreSessionUseCase(sessionRepository, opts...)
		sessionsHttp.NewSessionHandler(storeSessionUC).Register(app.Group("/sessions"))
	}

	checks.Register(app)
	app.Get("/internal/metrics", metrics.Handler())

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logger.Info().
		Str("addr", cfg.HTTPAddr).
		Str("source", cfg.Source).
		Bool("cache", collectionCache != nil).
		Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("fiber shutdown error")
	}

	logger.Info().Msg("server exiting")
}
