package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/teleshop/client/internal/application/courier"
	"github.com/teleshop/client/internal/infrastructure/backend"
	"github.com/teleshop/client/internal/infrastructure/config"
	"github.com/teleshop/client/internal/infrastructure/localstore"
	"github.com/teleshop/client/internal/infrastructure/logger"
	"github.com/teleshop/client/internal/infrastructure/telemetry"
)

func main() {
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

	log.Info("Starting courier console",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry (no-op unless enabled)
	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Open the durable local store for the login session
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	store, err := localstore.Open(localstore.Options{
		Driver:  cfg.Store.Driver,
		Path:    cfg.Store.Path,
		GormLog: gormLog,
		Logger:  log,
	})
	if err != nil {
		log.Fatal("Failed to open local store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing local store", zap.Error(err))
		}
	}()

	// Backend client
	client, err := backend.NewClient(backend.Config{
		BaseURL:        cfg.Backend.BaseURL,
		TimeoutSeconds: cfg.Backend.TimeoutSeconds,
		Traced:         cfg.Telemetry.Enabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to create backend client", zap.Error(err))
	}

	sessions := localstore.NewSessionStore(store, log)
	ctrl := courier.NewController(client, sessions, cfg.Session.TTL, log)
	ctrl.Start(ctx)

	view := ctrl.Render()
	if view.Orders != nil {
		log.Info("Courier console ready",
			zap.String("courier", view.Orders.CourierName),
			zap.Int("active_orders", len(view.Orders.Active)),
		)
	} else {
		log.Info("Courier console ready, awaiting login")
	}

	<-ctx.Done()
	log.Info("Shutting down courier console")
}
