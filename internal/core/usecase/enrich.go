package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/core/ports"
)

// Enricher combines the classifier, voice generator and metadata derivers
// into one enriched product record. It assembles on a copy and never
// mutates its input; the caller decides when to commit the result.
type Enricher struct {
	profile    domain.Profile
	classifier *Classifier
	voice      *VoiceGenerator
	seo        *SEODeriver
	taxonomy   *TaxonomyDeriver
	stripper   ports.MarkupStripper
	observer   ports.EnrichmentObserver
	now        func() time.Time
}

func NewEnricher(
	profile domain.Profile,
	classifier *Classifier,
	voice *VoiceGenerator,
	seo *SEODeriver,
	taxonomy *TaxonomyDeriver,
	stripper ports.MarkupStripper,
	observer ports.EnrichmentObserver,
) *Enricher {
	return &Enricher{
		profile:    profile,
		classifier: classifier,
		voice:      voice,
		seo:        seo,
		taxonomy:   taxonomy,
		stripper:   stripper,
		observer:   observer,
		now:        time.Now,
	}
}

// Enrich runs the full pipeline for one product. index is the item's
// position within the batch subset.
func (e *Enricher) Enrich(ctx context.Context, product domain.Product, index int) (domain.Product, error) {
	if product.Fields == nil {
		return domain.Product{}, domain.WrapError(domain.ErrInvalidInput, "enrich product", errors.New("product has no fields"))
	}

	collection := e.classifier.Classify(product)
	plain := e.stripper.Strip(product.RawDescription())

	description, usedFallback := e.voice.Generate(ctx, product, collection, plain, index)
	if usedFallback && e.observer != nil {
		e.observer.FallbackUsed()
	}

	seoTitle, seoDescription := e.seo.Derive(product, collection, plain)
	shopping := e.taxonomy.Derive(product, collection)

	out := product.Clone()
	out.Enrichment = &domain.Enrichment{
		EnrichedAt: e.now().UTC(),
		Collection: collection,

		OriginalDescription:    plain,
		OriginalTags:           product.Tags(),
		OriginalSEOTitle:       product.Field(domain.ColumnSEOTitle),
		OriginalSEODescription: product.Field(domain.ColumnSEODescription),

		NewDescription:    description,
		NewTags:           e.profile.JoinedTags(collection),
		NewSEOTitle:       seoTitle,
		NewSEODescription: seoDescription,

		Shopping: shopping,
	}
	return out, nil
}
