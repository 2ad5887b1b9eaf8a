package executor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors a run reports to.
type Metrics struct {
	Applied  prometheus.Counter
	Failures prometheus.Counter
	Duration prometheus.Histogram
}

// NewMetrics creates the migration collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Applied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fedibot",
			Name:      "migrations_applied_total",
			Help:      "Migration scripts applied and recorded in the ledger.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fedibot",
			Name:      "migration_failures_total",
			Help:      "Migration scripts rolled back to their savepoint after failing.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fedibot",
			Name:      "migration_duration_seconds",
			Help:      "Time spent executing and recording a migration script.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.Applied, m.Failures, m.Duration)

	return m
}

func (m *Metrics) observeApplied(d time.Duration) {
	if m == nil {
		return
	}

	m.Applied.Inc()
	m.Duration.Observe(d.Seconds())
}

func (m *Metrics) observeFailure() {
	if m == nil {
		return
	}

	m.Failures.Inc()
}
