package catalog

import (
	"sync"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// MemoryStore holds the working catalog for the lifetime of the process.
// Snapshot and Replace deep-copy so callers never share product maps with
// the stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Snapshot() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.Clone()
}

func (s *MemoryStore) Replace(catalog domain.Catalog) {
	clone := catalog.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = clone
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = domain.Catalog{}
}
