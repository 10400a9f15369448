package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/core/usecase"
)

type fakeStore struct {
	catalog domain.Catalog
	cleared bool
}

func (s *fakeStore) Snapshot() domain.Catalog        { return s.catalog.Clone() }
func (s *fakeStore) Replace(catalog domain.Catalog)  { s.catalog = catalog.Clone() }
func (s *fakeStore) Clear()                          { s.cleared = true; s.catalog = domain.Catalog{} }

type fakeRunner struct {
	running   bool
	cancelled bool
	summary   domain.RunSummary
}

func (r *fakeRunner) Run(_ context.Context, mode domain.RunMode, onProgress func(domain.RunProgress)) (domain.RunSummary, error) {
	if onProgress != nil {
		onProgress(domain.RunProgress{Total: 1, Current: 1, CurrentProduct: "Yoga Mat"})
	}
	summary := r.summary
	summary.Mode = mode
	return summary, nil
}
func (r *fakeRunner) Cancel()       { r.cancelled = true }
func (r *fakeRunner) Running() bool { return r.running }

func newTestRouter(store *fakeStore, runner *fakeRunner) *Router {
	return NewRouter(
		usecase.NewCatalogLoader(),
		store,
		runner,
		usecase.NewExporter(),
		nil,
		nil,
		nil,
	)
}

func multipartCSV(t *testing.T, csv string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "products.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadCatalog(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store, &fakeRunner{})

	body, contentType := multipartCSV(t, "Handle,Title\nmat,Yoga Mat\n")
	req := httptest.NewRequest(http.MethodPost, "/v1/catalog", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.catalog.Products) != 1 {
		t.Fatalf("expected catalog in store, got %d products", len(store.catalog.Products))
	}
}

func TestUploadCatalogEmptyIsBadRequest(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	body, contentType := multipartCSV(t, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/catalog", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCatalogRejectsUnknownStatus(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog?status=bogus", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListCatalogFilters(t *testing.T) {
	store := &fakeStore{catalog: domain.Catalog{
		Columns: []string{"Handle", "Title"},
		Products: []domain.Product{
			{ID: "mat", Fields: map[string]string{"Handle": "mat", "Title": "Yoga Mat"}, Enrichment: &domain.Enrichment{}},
			{ID: "balm", Fields: map[string]string{"Handle": "balm", "Title": "Lavender Balm"}},
		},
	}}
	router := newTestRouter(store, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog?status=pending", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Total    int              `json:"total"`
		Enriched int              `json:"enriched"`
		Matched  int              `json:"matched"`
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || resp.Enriched != 1 || resp.Matched != 1 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
	if resp.Products[0].ID != "balm" {
		t.Fatalf("expected pending product, got %q", resp.Products[0].ID)
	}
}

func TestClearCatalog(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store, &fakeRunner{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/catalog", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !store.cleared {
		t.Fatalf("expected store cleared")
	}
}

func TestStartRunRejectsUnknownMode(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(`{"mode":"bogus"}`))
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStartRunConflictsWhenRunning(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{running: true})

	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(`{"mode":"selective"}`))
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestStartRunAccepted(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{summary: domain.RunSummary{Status: domain.RunStatusCompleted}})

	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(`{"mode":"exhaustive"}`))
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCancelRun(t *testing.T) {
	runner := &fakeRunner{running: true}
	router := newTestRouter(&fakeStore{}, runner)

	req := httptest.NewRequest(http.MethodPost, "/v1/runs/cancel", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if !runner.cancelled {
		t.Fatalf("expected runner cancelled")
	}
}

func TestQueueRunUnavailableWithoutQueue(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodPost, "/v1/runs/queue", strings.NewReader(`{"catalog_id":"abc","mode":"selective"}`))
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSaveCatalogUnavailableWithoutRepo(t *testing.T) {
	router := newTestRouter(&fakeStore{}, &fakeRunner{})

	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/save", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestExportNothingEnrichedConflicts(t *testing.T) {
	store := &fakeStore{catalog: domain.Catalog{
		Columns:  []string{"Handle", "Title"},
		Products: []domain.Product{{ID: "mat", Fields: map[string]string{"Handle": "mat", "Title": "Yoga Mat"}}},
	}}
	router := newTestRouter(store, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/export", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestExportCSV(t *testing.T) {
	store := &fakeStore{catalog: domain.Catalog{
		Columns: []string{"Handle", "Title"},
		Products: []domain.Product{{
			ID:     "mat",
			Fields: map[string]string{"Handle": "mat", "Title": "Yoga Mat"},
			Enrichment: &domain.Enrichment{
				EnrichedAt:     time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
				Collection:     domain.CollectionMovementAndFlow,
				NewDescription: "Move with ease.",
				NewTags:        "movement, mobility, stretch",
			},
		}},
	}}
	router := newTestRouter(store, &fakeRunner{})

	req := httptest.NewRequest(http.MethodGet, "/v1/export?format=csv", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	disposition := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, "thrivera_shopify_import_") {
		t.Fatalf("unexpected disposition %q", disposition)
	}
	if !strings.Contains(rec.Body.String(), "Move with ease.") {
		t.Fatalf("expected enriched description in export body")
	}
}
