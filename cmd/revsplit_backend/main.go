package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/adapters/database/memory"
	"github.com/SscSPs/revenue_split_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/revenue_split_app/internal/adapters/ratesource"
	"github.com/SscSPs/revenue_split_app/internal/adapters/storage/leveldb"
	storemem "github.com/SscSPs/revenue_split_app/internal/adapters/storage/memory"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_split_app/internal/core/services"
	"github.com/SscSPs/revenue_split_app/internal/events"
	"github.com/SscSPs/revenue_split_app/internal/handlers"
	"github.com/SscSPs/revenue_split_app/internal/jobs"
	"github.com/SscSPs/revenue_split_app/internal/middleware"
	"github.com/SscSPs/revenue_split_app/internal/platform/config"
	"github.com/SscSPs/revenue_split_app/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := portsrepo.RepositoryProvider{
		RateSource: ratesource.NewExchangeRateAPI(cfg.RateSourceURL, &http.Client{Timeout: cfg.RateFetchTimeout}),
	}

	// Split configuration lives in Postgres when configured, otherwise in memory.
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
			logger.Error("Database migrations failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.SplitConfigRepo = pgsql.NewSplitConfigRepository(dbPool)
	} else {
		repos.SplitConfigRepo = memory.NewSplitConfigRepository()
	}

	if cfg.LocalStorePath != "" {
		store, err := leveldb.Open(cfg.LocalStorePath)
		if err != nil {
			logger.Error("Failed to open local store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing local store", slog.String("error", err.Error()))
			}
		}()
		repos.LocalStore = store
	} else {
		repos.LocalStore = storemem.NewStore()
	}

	broker := events.NewBroker(logger)
	container := services.NewServiceContainer(cfg, repos, broker)

	logger.Info("Loading exchange rates", slog.String("base_currency", cfg.BaseCurrency))
	container.Currency.EnsureRates(ctx)
	logger.Info("Exchange rates ready", slog.String("source", string(container.Currency.Status().Source)))

	stopJob := jobs.NewRateRefreshJob(container.Currency, cfg.RateRefreshIntervalMinutes, logger).Start()
	defer stopJob()

	rateLimiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}
