package usecase

import (
	"fmt"
	"strings"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

const (
	seoTitleMaxLen       = 60
	seoDescriptionMaxLen = 160
)

// SEODeriver produces the SEO title and meta description. Pure and total:
// empty inputs degrade to placeholder text.
type SEODeriver struct {
	profile domain.Profile
}

func NewSEODeriver(profile domain.Profile) *SEODeriver {
	return &SEODeriver{profile: profile}
}

// Derive builds both SEO fields from the product, its detected collection
// and the markup-stripped description.
func (d *SEODeriver) Derive(product domain.Product, collection domain.Collection, plainDescription string) (title, description string) {
	name := strings.TrimSpace(product.Title())
	if name == "" {
		name = product.Handle()
	}
	if name == "" {
		name = "Wellness Product"
	}

	title = truncateWithEllipsis(
		fmt.Sprintf("%s - Wellness Collection | %s", name, d.profile.BrandName),
		seoTitleMaxLen,
	)

	firstSentence := strings.TrimSpace(strings.SplitN(plainDescription, ".", 2)[0])
	if firstSentence == "" {
		firstSentence = name
	}

	opening := fmt.Sprintf(d.profile.SEOOpeningFor(collection), strings.ToLower(name))
	description = truncateWithEllipsis(
		fmt.Sprintf("%s %s. %s", opening, firstSentence, d.profile.SEOClosing),
		seoDescriptionMaxLen,
	)
	return title, description
}

func truncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
