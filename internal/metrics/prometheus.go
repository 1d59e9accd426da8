// Package metrics provides Prometheus metrics for reference counting.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erraggy/cadrefs/refcount"
)

// Recorder records reference count metrics on its own registry.
// It implements refcount.MetricsRecorder.
type Recorder struct {
	registry *prometheus.Registry

	CountsTotal          *prometheus.CounterVec
	ComponentsScanned    prometheus.Counter
	ComponentsSuppressed prometheus.Counter
	CountDuration        *prometheus.HistogramVec
}

// NewRecorder creates a Recorder. When withRuntime is true the Go runtime and
// process collectors are registered as well.
func NewRecorder(withRuntime bool) *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		CountsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadrefs_counts_total",
				Help: "Total number of reference counts by outcome",
			},
			[]string{"outcome"},
		),
		ComponentsScanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cadrefs_components_scanned_total",
				Help: "Total number of components listed by counted configurations",
			},
		),
		ComponentsSuppressed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cadrefs_components_suppressed_total",
				Help: "Total number of suppressed components skipped",
			},
		),
		CountDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadrefs_count_duration_seconds",
				Help:    "Time taken to count references",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(r.CountsTotal, r.ComponentsScanned, r.ComponentsSuppressed, r.CountDuration)
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// RecordCount implements refcount.MetricsRecorder.
func (r *Recorder) RecordCount(outcome string, components, suppressed int, duration time.Duration) {
	r.CountsTotal.WithLabelValues(outcome).Inc()
	r.ComponentsScanned.Add(float64(components))
	r.ComponentsSuppressed.Add(float64(suppressed))
	r.CountDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Handler returns an HTTP handler exposing the registry in the Prometheus
// text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var _ refcount.MetricsRecorder = (*Recorder)(nil)
