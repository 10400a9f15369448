package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

func TestDeriveSEOFields(t *testing.T) {
	d := NewSEODeriver(domain.DefaultProfile())

	title, description := d.Derive(yogaMat(), domain.CollectionMovementAndFlow, "A supportive mat. Extra detail.")

	if title != "Yoga Mat - Wellness Collection | Thrivera" {
		t.Fatalf("unexpected seo title %q", title)
	}
	if !strings.HasPrefix(description, "Thoughtfully curated yoga mat") {
		t.Fatalf("expected lowercased name in opening, got %q", description)
	}
	if !strings.Contains(description, "A supportive mat.") {
		t.Fatalf("expected first sentence in description, got %q", description)
	}
	if !strings.Contains(description, "Shop Thrivera's curated wellness collection.") {
		t.Fatalf("expected closing clause, got %q", description)
	}
}

func TestDeriveSEOTitleTruncated(t *testing.T) {
	d := NewSEODeriver(domain.DefaultProfile())
	product := testProduct("long", map[string]string{
		"Title": strings.Repeat("Very Long Product Name ", 5),
	})

	title, _ := d.Derive(product, domain.CollectionEverydayComforts, "")
	if utf8.RuneCountInString(title) > 60 {
		t.Fatalf("seo title exceeds 60 runes: %d", utf8.RuneCountInString(title))
	}
	if !strings.HasSuffix(title, "...") {
		t.Fatalf("expected ellipsis marker, got %q", title)
	}
}

func TestDeriveSEODescriptionTruncated(t *testing.T) {
	d := NewSEODeriver(domain.DefaultProfile())
	longSentence := strings.Repeat("wellness ", 40)

	_, description := d.Derive(yogaMat(), domain.CollectionMovementAndFlow, longSentence)
	if utf8.RuneCountInString(description) > 160 {
		t.Fatalf("seo description exceeds 160 runes: %d", utf8.RuneCountInString(description))
	}
	if !strings.HasSuffix(description, "...") {
		t.Fatalf("expected ellipsis marker, got %q", description)
	}
}

func TestDeriveSEONameFallbacks(t *testing.T) {
	d := NewSEODeriver(domain.DefaultProfile())

	handleOnly := testProduct("p1", map[string]string{"Handle": "calming-balm"})
	title, _ := d.Derive(handleOnly, domain.CollectionEverydayComforts, "")
	if !strings.HasPrefix(title, "calming-balm") {
		t.Fatalf("expected handle fallback, got %q", title)
	}

	anonymous := testProduct("p2", map[string]string{})
	title, _ = d.Derive(anonymous, domain.CollectionEverydayComforts, "")
	if !strings.HasPrefix(title, "Wellness Product") {
		t.Fatalf("expected placeholder name, got %q", title)
	}
}

func TestDeriveSEOEmptyDescriptionUsesName(t *testing.T) {
	d := NewSEODeriver(domain.DefaultProfile())

	_, description := d.Derive(yogaMat(), domain.CollectionMovementAndFlow, "")
	if !strings.Contains(description, "Yoga Mat.") {
		t.Fatalf("expected name as sentence stand-in, got %q", description)
	}
}
