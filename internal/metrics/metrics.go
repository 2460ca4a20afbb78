// Package metrics exposes Prometheus counters for resolution outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions counts finished resolution requests by backend source and
	// outcome ("found", "not_found", "error").
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamelength_resolutions_total",
		Help: "Resolution requests by source backend and outcome.",
	}, []string{"source", "outcome"})

	// CacheEvents counts result-cache activity ("hit", "miss").
	CacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamelength_cache_events_total",
		Help: "Result cache hits and misses.",
	}, []string{"event"})
)
