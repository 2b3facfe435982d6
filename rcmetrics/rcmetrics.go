// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rcmetrics exposes engine-internal counters and gauges directly
// via github.com/prometheus/client_golang, rather than bridging through a
// separate in-process metrics registry. The teacher routes metrics
// through github.com/luxfi/geth/metrics and a gatherer adapter into
// Prometheus; that bridge has no referent here (there is no EVM-style
// metered subsystem producing geth-shaped Counter/Gauge/Timer values for
// the RC engine to adapt), so this package registers Prometheus
// collectors directly, the way the teacher's own prometheus.Gatherer
// ultimately exposes values to a /metrics endpoint.
package rcmetrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every collector the engine and query surface update.
// Construct one with NewMetrics and register it with a
// prometheus.Registerer (production code) or leave it unregistered in
// tests.
type Metrics struct {
	BlocksProcessed   prometheus.Counter
	TransactionsCosted prometheus.Counter
	TransactionsRejected prometheus.Counter
	ChargedRC         prometheus.Counter
	PoolLevel         *prometheus.GaugeVec
	RegenScalar       prometheus.Gauge
	QueryRequests     *prometheus.CounterVec
	QueryErrors       *prometheus.CounterVec
}

// NewMetrics constructs a Metrics bundle with the given namespace, but
// does not register it — call Register to attach it to a registry.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		BlocksProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_processed_total",
			Help:      "Number of blocks for which the post-apply-block hook has run.",
		}),
		TransactionsCosted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_costed_total",
			Help:      "Number of transactions priced by the coster.",
		}),
		TransactionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_rejected_total",
			Help:      "Number of transactions rejected for insufficient RC or missing resource user.",
		}),
		ChargedRC: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charged_rc_total",
			Help:      "Sum of resource credits deducted from account mana bars.",
		}),
		PoolLevel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_level",
			Help:      "Current level of each resource pool, labeled by kind.",
		}, []string{"kind"}),
		RegenScalar: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regen_scalar",
			Help:      "Chain-wide regeneration scalar R used by the pricing curve.",
		}),
		QueryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_requests_total",
			Help:      "JSON-RPC query requests, labeled by method.",
		}, []string{"method"}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "JSON-RPC query errors, labeled by method.",
		}, []string{"method"}),
	}
}

// Register attaches every collector to reg. Panics on a duplicate
// registration, matching client_golang's own MustRegister semantics —
// a metrics name collision at startup is a programming error.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.BlocksProcessed,
		m.TransactionsCosted,
		m.TransactionsRejected,
		m.ChargedRC,
		m.PoolLevel,
		m.RegenScalar,
		m.QueryRequests,
		m.QueryErrors,
	)
}
