package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attendance_reconciler"

// Run outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeSchemaError = "schema_error"
	OutcomeFormatError = "format_error"
	OutcomeError       = "error"
)

// Metrics holds the collectors of report runs on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	runs           *prometheus.CounterVec
	droppedRows    prometheus.Counter
	tardinessCells *prometheus.CounterVec
	runDuration    prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Report runs by outcome.",
		}, []string{"outcome"}),
		droppedRows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_rows_dropped_total",
			Help:      "Attendance rows dropped for an unparsable timestamp.",
		}),
		tardinessCells: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tardiness_cells_total",
			Help:      "Tardiness values computed, by kind.",
		}, []string{"kind"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a report run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(outcome string, elapsed time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) AddDroppedRows(n int) {
	if n > 0 {
		m.droppedRows.Add(float64(n))
	}
}

// AddTardinessCells counts n tardiness values of the given kind.
func (m *Metrics) AddTardinessCells(kind string, n int) {
	if n > 0 {
		m.tardinessCells.WithLabelValues(kind).Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
