package ports

import (
	"context"
	"io"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// CatalogLoader is the inbound contract for establishing a catalog from a
// vendor CSV export.
type CatalogLoader interface {
	Load(r io.Reader) (domain.Catalog, error)
}

// BatchRunner is the inbound contract for driving one enrichment run. Run
// blocks until the run finishes; progress is delivered through onProgress
// before each item is processed. Cancel stops the current run at the next
// iteration boundary.
type BatchRunner interface {
	Run(ctx context.Context, mode domain.RunMode, onProgress func(domain.RunProgress)) (domain.RunSummary, error)
	Cancel()
	Running() bool
}

// CatalogExporter is the inbound contract for re-serializing the catalog.
type CatalogExporter interface {
	ExportRows(catalog domain.Catalog, tracking bool) ([]string, [][]string, error)
}
