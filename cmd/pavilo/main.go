package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/pavilo/pavilo-billing/internal/app"
	"github.com/pavilo/pavilo-billing/internal/auth"
	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/catalog"
	"github.com/pavilo/pavilo-billing/internal/directory"
	"github.com/pavilo/pavilo-billing/internal/export"
	"github.com/pavilo/pavilo-billing/internal/ledger"
	"github.com/pavilo/pavilo-billing/internal/plans"
	"github.com/pavilo/pavilo-billing/internal/platform/store"
	"github.com/pavilo/pavilo-billing/internal/reports"
	"github.com/pavilo/pavilo-billing/internal/settings"
	"github.com/pavilo/pavilo-billing/jobs"
)

func buildStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (store.Store, func(), error) {
	if cfg.StoreBackend == app.StoreBackendPostgres {
		pg, err := store.NewPostgres(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	st, err := store.NewRedis(ctx, redisClient)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}
	return st, closer, nil
}

func buildVerifier(cfg *app.Config) auth.Verifier {
	if cfg.AuthProviderURL == "" {
		return nil
	}
	provider := auth.NewProviderClient(cfg.AuthProviderURL)
	cacheClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return auth.NewCachedVerifier(provider, cacheClient, cfg.AuthCacheTTL)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	st, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("connect store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	catalogRepo := catalog.NewRepository(st, logger)
	catalogService := catalog.NewService(catalogRepo, logger)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	directoryRepo := directory.NewRepository(st, logger)
	directoryService := directory.NewService(directoryRepo, logger)
	directoryHandler := directory.NewHandler(logger, directoryService)

	invoiceRepo := billing.NewRepository(st, logger)
	billingService := billing.NewService(invoiceRepo, catalogService, logger)
	billingHandler := billing.NewHandler(logger, billingService)

	paymentRepo := ledger.NewRepository(st, logger)
	ledgerService := ledger.NewService(invoiceRepo, paymentRepo, logger)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	settingsService := settings.NewService(st, logger)
	settingsHandler := settings.NewHandler(logger, settingsService)

	pdfClient := export.NewGotenbergClient(cfg.GotenbergURL)
	exportHandler := export.NewHandler(logger, billingService, settingsService, pdfClient)

	reportsService := reports.NewService(billingService, catalogService, logger)
	reportsHandler := reports.NewHandler(logger, reportsService)

	plansHandler := plans.NewHandler(logger)

	var jobHandler *jobs.Handler
	if cfg.StoreBackend == app.StoreBackendRedis {
		redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
		jobClient, err := jobs.NewClient(redisOpts)
		if err != nil {
			logger.Error("init job client", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := jobClient.Close(); err != nil {
				logger.Warn("job client close", slog.Any("error", err))
			}
		}()
		inspector := asynq.NewInspector(redisOpts)
		jobHandler = jobs.NewHandler(jobClient, inspector, logger)
	} else {
		logger.Info("job queue disabled without redis backend")
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Identity:         auth.Middleware{Verifier: buildVerifier(cfg), Logger: logger},
		CatalogHandler:   catalogHandler,
		DirectoryHandler: directoryHandler,
		BillingHandler:   billingHandler,
		LedgerHandler:    ledgerHandler,
		ExportHandler:    exportHandler,
		SettingsHandler:  settingsHandler,
		ReportsHandler:   reportsHandler,
		PlansHandler:     plansHandler,
		JobHandler:       jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
