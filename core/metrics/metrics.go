// Package metrics exposes Prometheus instrumentation for diff runs.
package metrics

import (
	"time"

	"schemadiff/core/change"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the diff run collectors.
type Recorder struct {
	runs     *prometheus.CounterVec
	changes  *prometheus.CounterVec
	duration prometheus.Histogram
}

// New creates a Recorder and registers its collectors with reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schemadiff",
			Subsystem: "diff",
			Name:      "runs_total",
			Help:      "Total diff runs by outcome",
		}, []string{"outcome"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schemadiff",
			Name:      "changes_total",
			Help:      "Total change nodes produced, by change type",
		}, []string{"type"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "schemadiff",
			Subsystem: "diff",
			Name:      "duration_seconds",
			Help:      "Diff run duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	for _, c := range []prometheus.Collector{r.runs, r.changes, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Outcome labels.
const (
	OutcomeEqual   = "equal"
	OutcomeChanged = "changed"
	OutcomeError   = "error"
)

// ObserveDiff records one diff run that started at start.
func (r *Recorder) ObserveDiff(start time.Time, c change.Change, err error) {
	if r == nil {
		return
	}
	r.duration.Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		r.runs.WithLabelValues(OutcomeError).Inc()
	case change.IsEmpty(c):
		r.runs.WithLabelValues(OutcomeEqual).Inc()
	default:
		r.runs.WithLabelValues(OutcomeChanged).Inc()
		for typ, n := range change.Count(c) {
			r.changes.WithLabelValues(typ.String()).Add(float64(n))
		}
	}
}
