// SPDX-License-Identifier: MIT

package closure

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

// Package-level tracer for closure queries.
var tracer = otel.Tracer("cfpq.closure")

// result label values of cfpq_closure_queries_total.
const (
	resultOK           = "ok"
	resultMalformed    = "malformed_grammar"
	resultNoConverge   = "no_convergence"
	resultCancelled    = "cancelled"
	resultInvalidInput = "invalid_input"
)

var (
	// queryTotal counts queries by outcome.
	queryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cfpq_closure_queries_total",
		Help: "Total closure queries by result",
	}, []string{"result"})

	// queryDuration tracks closure latency.
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cfpq_closure_duration_seconds",
		Help:    "Closure query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	// passCount tracks passes until the fixed point.
	passCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cfpq_closure_passes",
		Help:    "Closure passes per successful query",
		Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100, 500},
	})

	// tripleCount tracks result sizes.
	tripleCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cfpq_closure_triples",
		Help:    "Triples per successful query",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrMalformedGrammar):
		return resultMalformed
	case errors.Is(err, ErrNoConvergence):
		return resultNoConverge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resultCancelled
	default:
		return resultInvalidInput
	}
}
