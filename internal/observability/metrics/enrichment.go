package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

// EnrichmentMetrics implements ports.EnrichmentObserver on a dedicated
// registry.
type EnrichmentMetrics struct {
	service  string
	registry *prometheus.Registry

	itemsTotal     *prometheus.CounterVec
	fallbacksTotal *prometheus.CounterVec
	runsTotal      *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	runInFlight    prometheus.Gauge
}

func NewEnrichmentMetrics(service string) *EnrichmentMetrics {
	registry := prometheus.NewRegistry()

	itemsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thrivera",
			Subsystem: "enrichment",
			Name:      "items_total",
			Help:      "Total processed catalog items by status.",
		},
		[]string{"service", "status"},
	)
	fallbacksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thrivera",
			Subsystem: "enrichment",
			Name:      "fallbacks_total",
			Help:      "Total items rewritten with the local fallback template.",
		},
		[]string{"service"},
	)
	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "thrivera",
			Subsystem: "enrichment",
			Name:      "runs_total",
			Help:      "Total finished batch runs by terminal status.",
		},
		[]string{"service", "mode", "status"},
	)
	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "thrivera",
			Subsystem: "enrichment",
			Name:      "run_duration_seconds",
			Help:      "Batch run duration in seconds.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"service", "mode"},
	)
	runInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "thrivera",
			Subsystem: "enrichment",
			Name:      "runs_in_flight",
			Help:      "Number of active batch runs.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(itemsTotal, fallbacksTotal, runsTotal, runDuration, runInFlight)

	return &EnrichmentMetrics{
		service:        service,
		registry:       registry,
		itemsTotal:     itemsTotal,
		fallbacksTotal: fallbacksTotal,
		runsTotal:      runsTotal,
		runDuration:    runDuration,
		runInFlight:    runInFlight,
	}
}

func (m *EnrichmentMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *EnrichmentMetrics) RunStarted(domain.RunMode, int) {
	m.runInFlight.Inc()
}

func (m *EnrichmentMetrics) ItemFinished(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.itemsTotal.WithLabelValues(m.service, status).Inc()
}

func (m *EnrichmentMetrics) FallbackUsed() {
	m.fallbacksTotal.WithLabelValues(m.service).Inc()
}

func (m *EnrichmentMetrics) RunFinished(summary domain.RunSummary) {
	if summary.Status != domain.RunStatusNothingToDo {
		m.runInFlight.Dec()
	}
	m.runsTotal.WithLabelValues(m.service, string(summary.Mode), string(summary.Status)).Inc()
	m.runDuration.WithLabelValues(m.service, string(summary.Mode)).Observe(summary.Duration.Seconds())
}
