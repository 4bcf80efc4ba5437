// Package metrics exposes prometheus counters for sync runs. Each Recorder
// owns its registry so runs and tests do not share state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/registrysync/pkg/errors"
)

const namespace = "registrysync"

// Call statuses.
const (
	StatusExecuted = "executed"
	StatusSkipped  = "skipped"
	StatusFailed   = "failed"
)

// Recorder records sync metrics. A nil Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	calls    *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "calls_total",
				Help:      "Mutating registry and tracker calls by operation, entity kind and status",
			},
			[]string{"operation", "kind", "status"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "outcomes_total",
				Help:      "Source records by match outcome",
			},
			[]string{"source", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "run_duration_seconds",
				Help:      "Duration of a sync run in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1h
			},
			[]string{"source"},
		),
	}
	r.registry.MustRegister(r.calls, r.outcomes, r.duration)
	return r
}

// Registry returns the underlying prometheus registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Call counts one mutating call.
func (r *Recorder) Call(operation, kind, status string) {
	if r == nil {
		return
	}
	r.calls.WithLabelValues(operation, kind, status).Inc()
}

// Outcome counts one classified source record.
func (r *Recorder) Outcome(source, outcome string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(source, outcome).Inc()
}

// ObserveRun records the duration of a run.
func (r *Recorder) ObserveRun(source string, d time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(source).Observe(d.Seconds())
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return errors.WrapIO("write", path, prometheus.WriteToTextfile(path, r.registry))
}
