package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/teleshop/client/internal/application/admin"
	"github.com/teleshop/client/internal/infrastructure/backend"
	"github.com/teleshop/client/internal/infrastructure/config"
	"github.com/teleshop/client/internal/infrastructure/logger"
	"github.com/teleshop/client/internal/infrastructure/scheduler"
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

	log.Info("Starting admin console",
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

	// Backend client
	client, err := backend.NewClient(backend.Config{
		BaseURL:        cfg.Backend.BaseURL,
		TimeoutSeconds: cfg.Backend.TimeoutSeconds,
		Traced:         cfg.Telemetry.Enabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to create backend client", zap.Error(err))
	}

	ctrl := admin.NewController(client, log)
	ctrl.RefreshAll(ctx)

	view := ctrl.Render()
	log.Info("Admin console ready",
		zap.Bool("stats_live", view.Dashboard.Live),
		zap.Int("products", len(view.Products.Products)),
		zap.Int("orders", len(view.Orders.Orders)),
	)

	// Periodic refresh for the active tab
	refresher := scheduler.NewRefresher(cfg.Refresh.Interval, ctrl.ViewActive, ctrl.RefreshTick, log)
	if cfg.Refresh.Enabled {
		refresher.Start(ctx)
		defer func() {
			if err := refresher.Stop(); err != nil && !errors.Is(err, scheduler.ErrNotRunning) {
				log.Error("Error stopping refresher", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	log.Info("Shutting down admin console")
}
