package usecase

import (
	"strings"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// Strategy selects which classification rule is authoritative for a
// deployment. First-match is the production default; scoring is the
// alternate variant kept for feed tooling that weighs the whole record.
type Strategy string

const (
	StrategyFirstMatch Strategy = "first-match"
	StrategyScoring    Strategy = "scoring"
)

func ParseStrategy(raw string) (Strategy, bool) {
	switch Strategy(raw) {
	case StrategyFirstMatch, StrategyScoring:
		return Strategy(raw), true
	case "":
		return StrategyFirstMatch, true
	default:
		return "", false
	}
}

// Classifier maps product text onto one of the five collections. Both
// strategies are deterministic and total: unmatched input is not an error,
// it is the default collection.
type Classifier struct {
	profile  domain.Profile
	strategy Strategy
}

func NewClassifier(profile domain.Profile, strategy Strategy) *Classifier {
	if strategy == "" {
		strategy = StrategyFirstMatch
	}
	return &Classifier{profile: profile, strategy: strategy}
}

// Classify applies the configured strategy to a product row.
func (c *Classifier) Classify(product domain.Product) domain.Collection {
	if c.strategy == StrategyScoring {
		return c.ScoreCollection(
			product.Title(),
			product.RawDescription(),
			product.Vendor(),
			product.Field(domain.ColumnType),
			product.Tags(),
		)
	}
	return c.DetectCollection(product.Title(), product.RawDescription())
}

// DetectCollection tests the detection groups in their fixed priority order
// against the lower-cased title + description and returns the first group
// with any keyword substring match.
func (c *Classifier) DetectCollection(title, description string) domain.Collection {
	text := strings.ToLower(title + " " + description)
	for _, group := range c.profile.DetectionOrder {
		for _, keyword := range group.Keywords {
			if strings.Contains(text, keyword) {
				return group.Collection
			}
		}
	}
	return c.profile.Default
}

// ScoreCollection sums the character length of every profile keyword found
// in the combined search text and returns the collection with the strictly
// highest total. Ties keep the first-seen collection in enumeration order;
// an all-zero score falls back to the default collection.
func (c *Classifier) ScoreCollection(title, description, vendor, productType, tags string) domain.Collection {
	text := strings.ToLower(strings.Join([]string{title, description, vendor, productType, tags}, " "))

	best := c.profile.Default
	bestScore := 0
	for _, spec := range c.profile.Collections {
		score := 0
		for _, keyword := range spec.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score += len(keyword)
			}
		}
		if score > bestScore {
			best = spec.Name
			bestScore = score
		}
	}
	return best
}
