package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlguard_checks_total",
			Help: "Completed URL checks by terminal verdict",
		},
		[]string{"verdict"},
	)

	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "urlguard_lookup_duration_seconds",
			Help:    "Latency of threat-intelligence lookups",
			Buckets: prometheus.DefBuckets,
		},
	)

	LookupErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlguard_lookup_errors_total",
			Help: "Failed threat-intelligence lookups by error kind",
		},
		[]string{"kind"},
	)

	HeuristicHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlguard_heuristic_hits_total",
			Help: "Denylist heuristic matches by rule",
		},
		[]string{"rule"},
	)
)
