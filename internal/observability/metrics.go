// Package observability exposes the Prometheus collectors used across the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	entryMutationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weightlog",
		Subsystem: "entries",
		Name:      "mutations_total",
		Help:      "Number of committed entry store mutations by operation.",
	}, []string{"op"})

	entryConflictCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "weightlog",
		Subsystem: "entries",
		Name:      "date_conflicts_total",
		Help:      "Number of inserts rejected because an entry for the date already exists.",
	})

	entryCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "weightlog",
		Subsystem: "entries",
		Name:      "stored",
		Help:      "Number of entries currently held by the entry store.",
	})

	lastMutationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "weightlog",
		Subsystem: "entries",
		Name:      "last_mutation_timestamp_seconds",
		Help:      "Unix timestamp of the most recent committed entry mutation.",
	})

	recoveryCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weightlog",
		Subsystem: "storage",
		Name:      "recovered_values_total",
		Help:      "Number of malformed persisted values reset to their empty state, by key.",
	}, []string{"key"})

	httpRequestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weightlog",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests served by method and status code.",
	}, []string{"method", "code"})

	httpDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "weightlog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(
		entryMutationCounter,
		entryConflictCounter,
		entryCountGauge,
		lastMutationGauge,
		recoveryCounter,
		httpRequestCounter,
		httpDuration,
	)
}

// RecordEntryMutation counts a committed mutation and updates the store size.
func RecordEntryMutation(op string, stored int, ts time.Time) {
	entryMutationCounter.WithLabelValues(op).Inc()
	entryCountGauge.Set(float64(stored))
	if !ts.IsZero() {
		lastMutationGauge.Set(float64(ts.Unix()))
	}
}

// RecordEntriesLoaded sets the store size after a load.
func RecordEntriesLoaded(stored int) {
	entryCountGauge.Set(float64(stored))
}

// RecordDateConflict counts a rejected duplicate-date insert.
func RecordDateConflict() {
	entryConflictCounter.Inc()
}

// RecordRecovery counts a malformed persisted value that was reset.
func RecordRecovery(key string) {
	recoveryCounter.WithLabelValues(key).Inc()
}

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(method string, status int, elapsed time.Duration) {
	httpRequestCounter.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpDuration.Observe(elapsed.Seconds())
}
