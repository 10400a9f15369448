package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thrivera/catalog-enricher/internal/config"
	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/core/ports"
	"github.com/thrivera/catalog-enricher/internal/core/usecase"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/catalog"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/htmltext"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/llm/openai"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/queue/nats"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/repository/postgres"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/resilience"
	"github.com/thrivera/catalog-enricher/internal/observability/metrics"
)

// App wires the enrichment pipeline. Repo and Queue stay nil when the
// corresponding backends are not configured; the HTTP surface answers 503
// for their endpoints and the rest of the service runs in-process.
type App struct {
	Config  config.Config
	Profile domain.Profile

	Store    ports.CatalogStore
	Loader   ports.CatalogLoader
	Engine   *usecase.Engine
	Exporter ports.CatalogExporter
	Repo     ports.CatalogRepository
	Queue    ports.RunQueue

	Observer *metrics.EnrichmentMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string, logger *slog.Logger) (*App, error) {
	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	strategy, ok := usecase.ParseStrategy(cfg.ClassifierStrategy)
	if !ok {
		return nil, fmt.Errorf("unknown classifier strategy %q", cfg.ClassifierStrategy)
	}

	guardCfg := resilience.DefaultConfig()
	guardCfg.Enabled = cfg.BreakerEnabled
	guard := resilience.NewGuard(guardCfg)

	observer := metrics.NewEnrichmentMetrics(service)

	generator := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, guard)
	stripper := htmltext.New()
	store := catalog.NewMemoryStore()

	classifier := usecase.NewClassifier(profile, strategy)
	voice := usecase.NewVoiceGenerator(profile, generator, logger)
	seo := usecase.NewSEODeriver(profile)
	taxonomy := usecase.NewTaxonomyDeriver(profile)
	enricher := usecase.NewEnricher(profile, classifier, voice, seo, taxonomy, stripper, observer)

	engine := usecase.NewEngine(
		profile,
		store,
		enricher,
		time.Duration(cfg.ItemDelayMS)*time.Millisecond,
		logger,
		observer,
	)

	app := &App{
		Config:   cfg,
		Profile:  profile,
		Store:    store,
		Loader:   usecase.NewCatalogLoader(),
		Engine:   engine,
		Exporter: usecase.NewExporter(),
		Observer: observer,
	}

	var closers []func()

	if cfg.PostgresDSN != "" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewCatalogRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		app.Repo = repo
		closers = append(closers, func() { _ = db.Close() })
	}

	if cfg.NATSURL != "" {
		queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSRunSubject, cfg.NATSEventSubject, nats.Options{
			Guard: guard,
		})
		if err != nil {
			for _, closeFn := range closers {
				closeFn()
			}
			return nil, fmt.Errorf("init run queue: %w", err)
		}
		app.Queue = queue
		closers = append(closers, queue.Close)
	}

	app.closeFn = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return app, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
