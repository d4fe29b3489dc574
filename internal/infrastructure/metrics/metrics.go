// Package metrics exposes build counters for the transaction builder.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the builder's prometheus collectors.
type Metrics struct {
	buildsTotal *prometheus.CounterVec
}

// New registers the collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bridge_core",
			Name:      "transaction_builds_total",
			Help:      "Transaction builds by chain, messenger and outcome.",
		}, []string{"chain", "messenger", "outcome"}),
	}
}

// RecordBuild counts one build attempt.
func (m *Metrics) RecordBuild(chain, messenger, outcome string) {
	if m == nil {
		return
	}
	m.buildsTotal.WithLabelValues(chain, messenger, outcome).Inc()
}
