package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Stripper reduces vendor HTML descriptions to plain text.
type Stripper struct{}

func New() *Stripper {
	return &Stripper{}
}

func (s *Stripper) Strip(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	if !strings.ContainsAny(trimmed, "<&") {
		return trimmed
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		// Unparsable markup passes through; the pipeline treats the raw
		// value as plain text rather than failing the item.
		return trimmed
	}
	return strings.TrimSpace(doc.Text())
}
