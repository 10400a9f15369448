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

	httpadapter "github.com/thrivera/catalog-enricher/internal/adapters/http"
	"github.com/thrivera/catalog-enricher/internal/bootstrap"
	"github.com/thrivera/catalog-enricher/internal/config"
	"github.com/thrivera/catalog-enricher/internal/observability/logging"
	"github.com/thrivera/catalog-enricher/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, "api", logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	router := httpadapter.NewRouter(
		app.Loader,
		app.Store,
		app.Engine,
		app.Exporter,
		app.Repo,
		app.Queue,
		logger,
	).Handler()

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	mux := http.NewServeMux()
	mux.Handle("/metrics", httpMetrics.Handler())
	mux.Handle("/metrics/enrichment", app.Observer.Handler())
	mux.Handle("/", httpMetrics.Middleware("api", router))

	server := &http.Server{
		Addr:        ":" + cfg.APIPort,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		// Run and event streams stay open well past a normal request.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	app.Engine.Cancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_error", "error", err)
	}
}
