package usecase

import (
	"strings"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// StatusFilter narrows the catalog view by enrichment state.
type StatusFilter string

const (
	StatusFilterAll      StatusFilter = "all"
	StatusFilterEnriched StatusFilter = "enriched"
	StatusFilterPending  StatusFilter = "pending"
)

func ParseStatusFilter(raw string) (StatusFilter, bool) {
	switch StatusFilter(raw) {
	case StatusFilterEnriched, StatusFilterPending, StatusFilterAll:
		return StatusFilter(raw), true
	case "":
		return StatusFilterAll, true
	default:
		return "", false
	}
}

// FilterCatalog returns the products matching the status filter and the
// free-text query. The query matches title, handle, vendor and detected
// collection, case-insensitively.
func FilterCatalog(catalog domain.Catalog, status StatusFilter, query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Product, 0, len(catalog.Products))
	for _, product := range catalog.Products {
		switch status {
		case StatusFilterEnriched:
			if !product.Enriched() {
				continue
			}
		case StatusFilterPending:
			if product.Enriched() {
				continue
			}
		}

		if query != "" && !matchesQuery(product, query) {
			continue
		}
		out = append(out, product)
	}
	return out
}

func matchesQuery(product domain.Product, query string) bool {
	candidates := []string{
		product.Title(),
		product.Handle(),
		product.Vendor(),
	}
	if product.Enrichment != nil {
		candidates = append(candidates, string(product.Enrichment.Collection))
	}
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), query) {
			return true
		}
	}
	return false
}
