package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cfpq",
		Subsystem: "store",
		Name:      "cache_hits_total",
		Help:      "Queries answered from the result store.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cfpq",
		Subsystem: "store",
		Name:      "cache_misses_total",
		Help:      "Queries that had to be computed.",
	})
)
