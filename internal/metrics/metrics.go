package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metric label values for fit outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// FitMetrics aggregates Prometheus collectors for fit execution. Each
// instance owns its own registry so tests and embedders never collide on
// global collector registration.
type FitMetrics struct {
	registry    *prometheus.Registry
	fitsTotal   *prometheus.CounterVec
	fitDuration *prometheus.HistogramVec
	activeFits  prometheus.Gauge
	handler     http.Handler
}

// NewFitMetrics creates the fit metric collectors together with the Go
// runtime collectors on a private registry.
func NewFitMetrics() *FitMetrics {
	registry := prometheus.NewRegistry()

	m := &FitMetrics{
		registry: registry,
		fitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitkit",
			Name:      "fits_total",
			Help:      "Total number of fit executions by model and outcome.",
		}, []string{"model", "status"}),
		fitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fitkit",
			Name:      "fit_duration_seconds",
			Help:      "Fit execution duration in seconds by model.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"model"}),
		activeFits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fitkit",
			Name:      "active_fits",
			Help:      "Number of fits currently in flight.",
		}),
	}

	registry.MustRegister(
		m.fitsTotal,
		m.fitDuration,
		m.activeFits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// FitStarted records the start of a fit execution.
func (m *FitMetrics) FitStarted() {
	m.activeFits.Inc()
}

// FitFinished records the completion of a fit execution.
//
// Parameters:
//   - model: The fit model name.
//   - duration: The wall-clock fit duration.
//   - err: The fit error, nil on success.
func (m *FitMetrics) FitFinished(model string, duration time.Duration, err error) {
	m.activeFits.Dec()
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.fitsTotal.WithLabelValues(model, status).Inc()
	m.fitDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *FitMetrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
