package usecase

import (
	"context"
	"sync"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// fakeGenerator scripts the remote text-generation port.
type fakeGenerator struct {
	mu           sync.Mutex
	response     string
	err          error
	calls        int
	instructions []string
	failUntil    int
}

func (g *fakeGenerator) GenerateDescription(_ context.Context, instruction string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.instructions = append(g.instructions, instruction)
	if g.err != nil && (g.failUntil == 0 || g.calls <= g.failUntil) {
		return "", g.err
	}
	return g.response, nil
}

// passthroughStripper treats every description as already plain text.
type passthroughStripper struct{}

func (passthroughStripper) Strip(markup string) string { return markup }

// recordingObserver counts observer callbacks.
type recordingObserver struct {
	mu        sync.Mutex
	started   int
	items     int
	failures  int
	fallbacks int
	finished  []domain.RunSummary
}

func (o *recordingObserver) RunStarted(domain.RunMode, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *recordingObserver) ItemFinished(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.items++
	if err != nil {
		o.failures++
	}
}

func (o *recordingObserver) FallbackUsed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fallbacks++
}

func (o *recordingObserver) RunFinished(summary domain.RunSummary) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, summary)
}

// memStore is a minimal in-test catalog store.
type memStore struct {
	mu       sync.Mutex
	catalog  domain.Catalog
	replaces int
}

func (s *memStore) Snapshot() domain.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Clone()
}

func (s *memStore) Replace(catalog domain.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog.Clone()
	s.replaces++
}

func (s *memStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = domain.Catalog{}
}

func testProduct(id string, fields map[string]string) domain.Product {
	return domain.Product{ID: id, Fields: fields}
}

func yogaMat() domain.Product {
	return testProduct("premium-yoga-mat", map[string]string{
		"Handle":        "premium-yoga-mat",
		"Title":         "Yoga Mat",
		"Vendor":        "FlowGoods",
		"Tags":          "fitness, gear",
		"Body (HTML)":   "<p>A high-quality mat for yoga and stretching.</p>",
		"Variant Price": "42.00",
	})
}
