package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/core/ports"
	"github.com/thrivera/catalog-enricher/internal/core/usecase"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/exportfile"
)

type Router struct {
	loader   ports.CatalogLoader
	store    ports.CatalogStore
	runner   ports.BatchRunner
	exporter ports.CatalogExporter
	repo     ports.CatalogRepository
	queue    ports.RunQueue
	logger   *slog.Logger

	hub *eventHub
	now func() time.Time
}

// NewRouter wires the session surface. repo and queue may be nil when
// persistence or queueing is not configured; their endpoints then answer
// 503.
func NewRouter(
	loader ports.CatalogLoader,
	store ports.CatalogStore,
	runner ports.BatchRunner,
	exporter ports.CatalogExporter,
	repo ports.CatalogRepository,
	queue ports.RunQueue,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		loader:   loader,
		store:    store,
		runner:   runner,
		exporter: exporter,
		repo:     repo,
		queue:    queue,
		logger:   logger,
		hub:      newEventHub(),
		now:      time.Now,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/catalog", rt.catalog)
	mux.HandleFunc("/v1/catalog/save", rt.saveCatalog)
	mux.HandleFunc("/v1/catalog/restore", rt.restoreCatalog)
	mux.HandleFunc("/v1/runs", rt.startRun)
	mux.HandleFunc("/v1/runs/events", rt.runEvents)
	mux.HandleFunc("/v1/runs/cancel", rt.cancelRun)
	mux.HandleFunc("/v1/runs/queue", rt.queueRun)
	mux.HandleFunc("/v1/export", rt.export)
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) catalog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadCatalog(w, r)
	case http.MethodGet:
		rt.listCatalog(w, r)
	case http.MethodDelete:
		rt.store.Clear()
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadCatalog(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	catalog, err := rt.loader.Load(file)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.store.Replace(catalog)

	rt.logger.Info("catalog_loaded", "products", len(catalog.Products), "columns", len(catalog.Columns))
	writeJSON(w, http.StatusCreated, map[string]any{
		"products": len(catalog.Products),
		"columns":  len(catalog.Columns),
	})
}

func (rt *Router) listCatalog(w http.ResponseWriter, r *http.Request) {
	status, ok := usecase.ParseStatusFilter(r.URL.Query().Get("status"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be one of all, enriched, pending"})
		return
	}

	catalog := rt.store.Snapshot()
	products := usecase.FilterCatalog(catalog, status, r.URL.Query().Get("q"))

	writeJSON(w, http.StatusOK, map[string]any{
		"total":    len(catalog.Products),
		"enriched": catalog.EnrichedCount(),
		"matched":  len(products),
		"products": products,
	})
}

func (rt *Router) saveCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "catalog persistence is not configured"})
		return
	}

	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if r.Body != nil {
		// An empty body means a fresh anonymous save.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	catalog := rt.store.Snapshot()
	if catalog.Empty() {
		writeError(w, domain.ErrEmptyCatalog)
		return
	}

	now := rt.now().UTC()
	saved := domain.SavedCatalog{
		ID:        strings.TrimSpace(req.ID),
		Name:      strings.TrimSpace(req.Name),
		Catalog:   catalog,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.Name == "" {
		saved.Name = "catalog " + now.Format("2006-01-02")
	}

	if err := rt.repo.Save(r.Context(), saved); err != nil {
		writeError(w, err)
		return
	}

	rt.logger.Info("catalog_saved", "catalog_id", saved.ID, "products", len(catalog.Products))
	writeJSON(w, http.StatusOK, map[string]string{"id": saved.ID, "name": saved.Name})
}

func (rt *Router) restoreCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "catalog persistence is not configured"})
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var saved domain.SavedCatalog
	var err error
	if strings.TrimSpace(req.ID) != "" {
		saved, err = rt.repo.Load(r.Context(), strings.TrimSpace(req.ID))
	} else {
		saved, err = rt.repo.LoadLatest(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	rt.store.Replace(saved.Catalog)

	rt.logger.Info("catalog_restored", "catalog_id", saved.ID, "products", len(saved.Catalog.Products))
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       saved.ID,
		"name":     saved.Name,
		"products": len(saved.Catalog.Products),
	})
}

func (rt *Router) startRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	mode, ok := domain.ParseRunMode(req.Mode)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be selective or exhaustive"})
		return
	}
	if rt.runner.Running() {
		writeError(w, domain.ErrRunInProgress)
		return
	}

	// The run outlives the request; progress and the final summary reach
	// clients through the event stream.
	go func() {
		summary, err := rt.runner.Run(context.Background(), mode, func(progress domain.RunProgress) {
			rt.hub.publish(runEvent{Type: "progress", Payload: progress})
		})
		if err != nil {
			rt.logger.Error("run_rejected", "error", err)
			return
		}
		rt.hub.publish(runEvent{Type: "summary", Payload: summary})
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started", "mode": string(mode)})
}

func (rt *Router) runEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if err := streamEvents(w, r, rt.hub); err != nil {
		rt.logger.Error("event_stream_failed", "error", err)
	}
}

func (rt *Router) cancelRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	rt.runner.Cancel()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "cancelling"})
}

func (rt *Router) queueRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "run queue is not configured"})
		return
	}

	var req domain.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.CatalogID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "catalog_id is required"})
		return
	}
	if _, ok := domain.ParseRunMode(string(req.Mode)); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be selective or exhaustive"})
		return
	}

	if err := rt.queue.PublishRunRequested(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "catalog_id": req.CatalogID})
}

func (rt *Router) export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	tracking := r.URL.Query().Get("tracking") == "true"
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be csv or xlsx"})
		return
	}

	header, rows, err := rt.exporter.ExportRows(rt.store.Snapshot(), tracking)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := usecase.ExportFilename(tracking, format, rt.now())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exportfile.WriteXLSX(w, header, rows)
	} else {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = exportfile.WriteCSV(w, header, rows)
	}
	if err != nil {
		rt.logger.Error("export_write_failed", "format", format, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
