package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	syncapp "github.com/gematelier/ordersync/internal/application/sync"
	"github.com/gematelier/ordersync/internal/domain/runs"
	"github.com/gematelier/ordersync/internal/infrastructure/config"
	"github.com/gematelier/ordersync/internal/infrastructure/logger"
	"github.com/gematelier/ordersync/internal/infrastructure/persistence"
	"github.com/gematelier/ordersync/internal/infrastructure/runlog"
	"github.com/gematelier/ordersync/internal/infrastructure/shopify"
	"github.com/gematelier/ordersync/internal/infrastructure/telemetry"
)

func main() {
	var once bool
	flag.BoolVar(&once, "once", false, "Run one sync cycle and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting order sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Bool("once", once),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Initialize database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize platform client
	platformCfg := shopify.NewConfig(cfg.Shopify.Domain, cfg.Shopify.APIVersion, cfg.Shopify.AccessToken)
	platformCfg.TimeoutSeconds = int(cfg.Shopify.Timeout.Seconds())
	platform, err := shopify.NewClient(platformCfg)
	if err != nil {
		log.Fatal("Failed to create platform client", zap.Error(err))
	}

	// Initialize run log
	runLog, err := runlog.NewFileWriter(cfg.Sync.LogDir)
	if err != nil {
		log.Fatal("Failed to create run log directory", zap.Error(err))
	}

	// Assemble the pipeline
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	persister := syncapp.NewPersister(customerRepo, orderRepo, cfg.Sync.DedupeEnabled, log)
	orchestrator := syncapp.NewOrchestrator(
		platform,
		syncapp.NewTransformer(),
		persister,
		runLog,
		syncapp.Options{
			ImportTag:    cfg.Shopify.ImportTag,
			ProcessedTag: cfg.Shopify.ProcessedTag,
			RetagEnabled: cfg.Shopify.RetagEnabled,
			Since:        cfg.Shopify.Since,
			Concurrency:  cfg.Sync.Concurrency,
			Retry: syncapp.RetryPolicy{
				MaxRetries: cfg.Sync.RetryCount,
				Delay:      cfg.Sync.RetryDelay,
			},
		},
		log,
	)

	if once {
		run, err := orchestrator.RunOnce(ctx)
		if err != nil {
			log.Error("Sync cycle failed", zap.Error(err))
			os.Exit(1)
		}
		if run.Status == runs.RunStatusFailed {
			os.Exit(1)
		}
		return
	}

	daemon := syncapp.NewDaemon(orchestrator, cfg.Sync.Interval, log)
	if err := daemon.Start(ctx); err != nil {
		log.Fatal("Failed to start sync daemon", zap.Error(err))
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := daemon.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping sync daemon", zap.Error(err))
	}
}
