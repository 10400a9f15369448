package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thrivera/catalog-enricher/internal/bootstrap"
	"github.com/thrivera/catalog-enricher/internal/config"
	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "worker", logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	if app.Queue == nil {
		log.Fatalf("worker requires NATS_URL")
	}
	if app.Repo == nil {
		log.Fatalf("worker requires POSTGRES_DSN")
	}

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: app.Observer.Handler(),
	}
	go func() {
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSRunSubject)
	err = app.Queue.SubscribeRunRequested(ctx, func(handlerCtx context.Context, req domain.RunRequest) error {
		return processRun(handlerCtx, app, logger, req)
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}

// processRun enriches one saved catalog end to end: load, run, persist the
// result, report the summary.
func processRun(ctx context.Context, app *bootstrap.App, logger *slog.Logger, req domain.RunRequest) error {
	runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	saved, err := app.Repo.Load(runCtx, req.CatalogID)
	if err != nil {
		logger.Error("worker_load_failed", "catalog_id", req.CatalogID, "error", err)
		return err
	}
	app.Store.Replace(saved.Catalog)

	summary, err := app.Engine.Run(runCtx, req.Mode, nil)
	if err != nil {
		logger.Error("worker_run_rejected", "catalog_id", req.CatalogID, "error", err)
		return err
	}

	saved.Catalog = app.Store.Snapshot()
	saved.UpdatedAt = time.Now().UTC()
	if err := app.Repo.Save(runCtx, saved); err != nil {
		logger.Error("worker_save_failed", "catalog_id", req.CatalogID, "error", err)
		return err
	}

	if err := app.Queue.PublishRunCompleted(runCtx, summary); err != nil {
		logger.Error("worker_publish_failed", "catalog_id", req.CatalogID, "error", err)
	}
	logger.Info("worker_run_finished",
		"catalog_id", req.CatalogID,
		"status", string(summary.Status),
		"processed", summary.Processed,
		"failed", summary.Failed,
	)
	return nil
}
