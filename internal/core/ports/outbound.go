package ports

import (
	"context"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// TextGenerator performs the remote text-generation call. Implementations
// may fail; the voice generator absorbs every failure into the fallback.
type TextGenerator interface {
	GenerateDescription(ctx context.Context, instruction string) (string, error)
}

// MarkupStripper reduces vendor HTML descriptions to plain text.
type MarkupStripper interface {
	Strip(markup string) string
}

// CatalogStore holds the session's working catalog. The batch engine is its
// sole writer during a run and writes by wholesale snapshot replacement.
type CatalogStore interface {
	Snapshot() domain.Catalog
	Replace(catalog domain.Catalog)
	Clear()
}

// CatalogRepository persists catalog snapshots across sessions.
type CatalogRepository interface {
	EnsureSchema(ctx context.Context) error
	Save(ctx context.Context, saved domain.SavedCatalog) error
	Load(ctx context.Context, id string) (domain.SavedCatalog, error)
	LoadLatest(ctx context.Context) (domain.SavedCatalog, error)
	Delete(ctx context.Context, id string) error
}

// RunQueue carries run requests to headless workers and run results back.
type RunQueue interface {
	PublishRunRequested(ctx context.Context, req domain.RunRequest) error
	SubscribeRunRequested(ctx context.Context, handler func(context.Context, domain.RunRequest) error) error
	PublishRunCompleted(ctx context.Context, summary domain.RunSummary) error
}

// EnrichmentObserver receives pipeline telemetry.
type EnrichmentObserver interface {
	RunStarted(mode domain.RunMode, total int)
	ItemFinished(err error)
	FallbackUsed()
	RunFinished(summary domain.RunSummary)
}
