// Package metrics exposes the classification core's Prometheus collectors:
// pages processed, per-page classification latency, solver
// feasible/infeasible outcomes, and build-retry counts. Grounded on
// spikey979-junior_goling_v2's internal/metrics package — a small set of
// package-level CounterVec/HistogramVec/GaugeVec collectors registered once
// by Init and updated through plain functions, rather than a struct the
// caller threads through every layer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legoclassify",
			Name:      "pages_processed_total",
			Help:      "Total pages classified, by outcome (ok, degraded, infeasible)",
		},
		[]string{"outcome"},
	)

	pageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legoclassify",
			Name:      "page_classification_duration_seconds",
			Help:      "Wall-clock time to classify one page, including solve and build",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	candidatesScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "legoclassify",
			Name:      "candidates_scored_total",
			Help:      "Candidates emitted by classifier score passes, by label",
		},
		[]string{"label"},
	)

	buildRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "legoclassify",
			Name:      "build_retries_total",
			Help:      "Total solver re-invocations triggered by a BuildFailed candidate",
		},
	)

	unconsumedBlocks = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "legoclassify",
			Name:      "unprocessed_blocks",
			Help:      "Count of blocks left unprocessed per page",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"outcome"},
	)
)

// Init registers every collector. Calling it more than once with the same
// registry panics via prometheus.MustRegister, matching promhttp's usual
// process-lifetime-singleton usage.
func Init() {
	prometheus.MustRegister(pagesProcessed, pageDuration, candidatesScored, buildRetries, unconsumedBlocks)
}

// Handler returns the http.Handler to mount at /metrics.
func Handler() http.Handler { return promhttp.Handler() }

// ObservePage records one page's outcome, duration, and unprocessed-block
// count.
func ObservePage(outcome string, dur time.Duration, unprocessed int) {
	pagesProcessed.WithLabelValues(outcome).Inc()
	pageDuration.WithLabelValues(outcome).Observe(dur.Seconds())
	unconsumedBlocks.WithLabelValues(outcome).Observe(float64(unprocessed))
}

// IncCandidatesScored adds n to the count of candidates emitted for label.
func IncCandidatesScored(label string, n int) {
	if n <= 0 {
		return
	}
	candidatesScored.WithLabelValues(label).Add(float64(n))
}

// IncBuildRetry records one build-retry re-solve.
func IncBuildRetry() { buildRetries.Inc() }
