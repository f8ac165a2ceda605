package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "provider_map"

const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

//nolint:gochecknoglobals
var (
	SnapshotLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot_cache",
		Name:      "lookups_total",
		Help:      "Snapshot cache lookups by backend and result.",
	}, []string{"backend", "result"})

	SnapshotBuildSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "snapshot_cache",
		Name:      "build_seconds",
		Help:      "Time spent rebuilding the provider snapshot.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend"})

	SnapshotSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "snapshot_cache",
		Name:      "providers",
		Help:      "Number of providers in the last built snapshot.",
	})

	HTTPRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_seconds",
		Help:      "HTTP request latency by route pattern, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)
