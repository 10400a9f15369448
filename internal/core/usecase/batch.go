package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/core/ports"
)

// Engine drives one enrichment run over the session catalog: it selects the
// work subset, processes items strictly in catalog order, commits the full
// catalog snapshot after every successful item, absorbs per-item failures
// and honors cooperative cancellation at iteration boundaries. Only one run
// may be active at a time.
type Engine struct {
	profile  domain.Profile
	store    ports.CatalogStore
	enricher *Enricher
	logger   *slog.Logger
	observer ports.EnrichmentObserver
	limiter  *rate.Limiter
	now      func() time.Time

	mu        sync.Mutex
	running   bool
	cancelRun context.CancelFunc
}

func NewEngine(
	profile domain.Profile,
	store ports.CatalogStore,
	enricher *Enricher,
	itemDelay time.Duration,
	logger *slog.Logger,
	observer ports.EnrichmentObserver,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	// Item starts are spaced itemDelay apart to stay under the remote
	// service's rate limits; the first item is never delayed.
	limiter := rate.NewLimiter(rate.Inf, 1)
	if itemDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(itemDelay), 1)
	}
	return &Engine{
		profile:  profile,
		store:    store,
		enricher: enricher,
		logger:   logger,
		observer: observer,
		limiter:  limiter,
		now:      time.Now,
	}
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Cancel requests cooperative cancellation of the active run. The current
// item is allowed to finish; the flag is honored at the next iteration
// boundary. Calling Cancel with no active run is a no-op.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelRun != nil {
		e.cancelRun()
	}
}

// Run executes one batch run and blocks until it finishes. onProgress is
// invoked before each item is processed. Cancellation and an empty work
// subset are reported through the summary status, not as errors.
func (e *Engine) Run(ctx context.Context, mode domain.RunMode, onProgress func(domain.RunProgress)) (domain.RunSummary, error) {
	runCtx, err := e.begin(ctx)
	if err != nil {
		return domain.RunSummary{}, err
	}
	defer e.finish()

	start := e.now()
	runID := uuid.NewString()
	log := e.logger.With("run_id", runID, "mode", string(mode))

	working := e.store.Snapshot()
	subset := e.selectSubset(working, mode)

	summary := domain.RunSummary{
		RunID:           runID,
		Mode:            mode,
		Total:           len(subset),
		AlreadyEnriched: len(working.Products) - len(subset),
	}

	if len(subset) == 0 {
		summary.Status = domain.RunStatusNothingToDo
		summary.Message = "all products are already enriched"
		if working.Empty() {
			summary.Message = "catalog is empty"
		}
		summary.Duration = e.now().Sub(start)
		log.Info("run_nothing_to_do", "catalog_size", len(working.Products))
		e.notifyFinished(summary)
		return summary, nil
	}

	if e.observer != nil {
		e.observer.RunStarted(mode, len(subset))
	}
	log.Info("run_started", "to_process", len(subset), "already_enriched", summary.AlreadyEnriched)

	cancelled := false
	for i, id := range subset {
		if runCtx.Err() != nil {
			cancelled = true
			break
		}
		if err := e.limiter.Wait(runCtx); err != nil {
			cancelled = true
			break
		}

		position := working.IndexByID(id)
		if position < 0 {
			continue
		}
		product := working.Products[position]

		label := product.Title()
		if label == "" {
			label = product.ID
		}
		if onProgress != nil {
			onProgress(domain.RunProgress{
				RunID:           runID,
				Total:           len(subset),
				Current:         i + 1,
				CurrentProduct:  label,
				AlreadyEnriched: summary.AlreadyEnriched,
			})
		}

		enriched, err := e.enricher.Enrich(runCtx, product, i)
		if e.observer != nil {
			e.observer.ItemFinished(err)
		}
		if err != nil {
			// One item's failure never aborts the run: the item keeps its
			// previous state and the loop moves on.
			summary.Failed++
			log.Error("item_failed", "product", label, "error", err)
			continue
		}

		working.Products[position] = enriched
		e.store.Replace(working)
		summary.Processed++
		log.Info("item_enriched",
			"product", label,
			"collection", string(enriched.Enrichment.Collection),
			"current", i+1,
			"total", len(subset),
		)
	}

	if cancelled {
		summary.Status = domain.RunStatusCancelled
		summary.Message = "processing was cancelled by user"
	} else {
		summary.Status = domain.RunStatusCompleted
		summary.Message = fmt.Sprintf("enriched %d of %d products", summary.Processed, summary.Total)
	}
	summary.Duration = e.now().Sub(start)

	log.Info("run_finished",
		"status", string(summary.Status),
		"processed", summary.Processed,
		"failed", summary.Failed,
		"duration_ms", float64(summary.Duration.Microseconds())/1000.0,
	)
	e.notifyFinished(summary)
	return summary, nil
}

func (e *Engine) begin(ctx context.Context) (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil, domain.ErrRunInProgress
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.running = true
	e.cancelRun = cancel
	return runCtx, nil
}

func (e *Engine) finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelRun != nil {
		e.cancelRun()
		e.cancelRun = nil
	}
	e.running = false
}

func (e *Engine) notifyFinished(summary domain.RunSummary) {
	if e.observer != nil {
		e.observer.RunFinished(summary)
	}
}

// selectSubset computes the ordered work subset. Selective mode excludes
// products already judged enriched; exhaustive mode takes every product.
// Subset order preserves catalog row order.
func (e *Engine) selectSubset(catalog domain.Catalog, mode domain.RunMode) []string {
	ids := make([]string, 0, len(catalog.Products))
	for _, product := range catalog.Products {
		if mode == domain.RunModeSelective && e.PreEnriched(product) {
			continue
		}
		ids = append(ids, product.ID)
	}
	return ids
}

// PreEnriched is the selective-mode sniff test: a product counts as already
// enriched when its current description carries a brand marker phrase or
// its current tag field carries any collection tag token.
func (e *Engine) PreEnriched(product domain.Product) bool {
	description := product.RawDescription()
	tags := product.Tags()
	if product.Enrichment != nil {
		description = product.Enrichment.NewDescription
		tags = product.Enrichment.NewTags
	}

	description = strings.ToLower(description)
	for _, phrase := range e.profile.MarkerPhrases {
		if strings.Contains(description, strings.ToLower(phrase)) {
			return true
		}
	}

	tags = strings.ToLower(tags)
	for _, token := range e.profile.TagTokens() {
		if strings.Contains(tags, token) {
			return true
		}
	}
	return false
}
