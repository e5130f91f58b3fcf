// Package metrics exports breeding engine metrics in the Prometheus format.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "breeding"

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Recorder publishes operation timings and engine counters on its own
// registry. It satisfies the breeding service's metrics recorder.
type Recorder struct {
	registry  *prometheus.Registry
	duration  *prometheus.HistogramVec
	skipped   prometheus.Counter
	truncated prometheus.Counter
}

// NewRecorder creates a recorder with a fresh registry that also carries
// the Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of breeding operations by outcome.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genes_skipped_total",
			Help:      "Genes left out of odds because their inheritance is not modeled.",
		}),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "combos_truncated_total",
			Help:      "Odds computations whose joint distribution hit the combination cap.",
		}),
	}

	r.registry.MustRegister(
		r.duration,
		r.skipped,
		r.truncated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Observe records a service operation outcome.
func (r *Recorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := statusError
	if success {
		status = statusSuccess
	}
	r.duration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// GenesSkipped adds n genes omitted from an odds computation.
func (r *Recorder) GenesSkipped(n int) {
	if n > 0 {
		r.skipped.Add(float64(n))
	}
}

// CombosTruncated counts one computation that hit the combination cap.
func (r *Recorder) CombosTruncated() {
	r.truncated.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
