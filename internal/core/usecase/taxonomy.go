package usecase

import (
	"regexp"
	"strings"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// Gender markers are matched as whole words so "women" never reads as "men".
var (
	menToken   = regexp.MustCompile(`(?i)\bmen'?s?\b`)
	womenToken = regexp.MustCompile(`(?i)\bwomen'?s?\b`)
)

// TaxonomyDeriver produces the Google Shopping feed fields for a product.
// Pure and deterministic.
type TaxonomyDeriver struct {
	profile domain.Profile
}

func NewTaxonomyDeriver(profile domain.Profile) *TaxonomyDeriver {
	return &TaxonomyDeriver{profile: profile}
}

func (d *TaxonomyDeriver) Derive(product domain.Product, collection domain.Collection) domain.ShoppingFields {
	entry := d.profile.TaxonomyFor(collection)
	vendor := product.Vendor()

	return domain.ShoppingFields{
		Category:      entry.Category,
		Gender:        detectGender(product.Title()),
		AgeGroup:      "adult",
		Condition:     "new",
		CustomProduct: d.customProductFlag(product.Title(), vendor),
		CustomLabel0:  entry.CustomLabel0,
		CustomLabel1:  priceTier(product.Price()),
		CustomLabel2:  truncateRunes(vendor, 20),
		CustomLabel3:  entry.CustomLabel3,
		CustomLabel4:  d.profile.BrandLabel,
	}
}

// detectGender infers male/female only when the title carries a strict
// gender marker without its opposite.
func detectGender(title string) string {
	hasMen := menToken.MatchString(title)
	hasWomen := womenToken.MatchString(title)
	switch {
	case hasMen && !hasWomen:
		return "male"
	case hasWomen && !hasMen:
		return "female"
	default:
		return "unisex"
	}
}

func priceTier(price float64) string {
	switch {
	case price > 50:
		return "premium"
	case price > 25:
		return "mid-range"
	default:
		return "budget"
	}
}

// customProductFlag marks non-mass-produced goods for the shopping feed.
func (d *TaxonomyDeriver) customProductFlag(title, vendor string) string {
	haystack := strings.ToLower(title + " " + vendor)
	for _, indicator := range d.profile.CustomIndicators {
		if strings.Contains(haystack, indicator) {
			return "TRUE"
		}
	}
	return "FALSE"
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
