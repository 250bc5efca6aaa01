package metrics_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/legoclassify/metrics"
)

func TestInitRegistersCollectorsAndHandlerServesThem(t *testing.T) {
	metrics.Init()

	metrics.ObservePage("ok", 10*time.Millisecond, 2)
	metrics.IncCandidatesScored("page_number", 3)
	metrics.IncBuildRetry()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "legoclassify_pages_processed_total")
	assert.Contains(t, body, "legoclassify_candidates_scored_total")
	assert.Contains(t, body, "legoclassify_build_retries_total")
}

func TestIncCandidatesScoredIgnoresNonPositive(t *testing.T) {
	// A defensive no-op guard: the pipeline computes a delta that can be
	// zero (or, across concurrent pages, momentarily negative before both
	// finish) and must not panic prometheus's counter with a negative Add.
	assert.NotPanics(t, func() {
		metrics.IncCandidatesScored("step_number", 0)
		metrics.IncCandidatesScored("step_number", -1)
	})
	_ = prometheus.DefBuckets
}
