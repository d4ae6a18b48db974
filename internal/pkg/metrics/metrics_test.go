package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/recipes", "200"))
	ObserveHTTP("GET", "/recipes", 200, 15*time.Millisecond)
	ObserveHTTP("GET", "/recipes", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/recipes", "200")); got != before+2 {
		t.Fatalf("requests = %v, want %v", got, before+2)
	}
}

func TestRecordBestRecipesCache(t *testing.T) {
	hits := testutil.ToFloat64(BestRecipesCache.WithLabelValues("hit"))
	misses := testutil.ToFloat64(BestRecipesCache.WithLabelValues("miss"))

	RecordBestRecipesCache(true)
	RecordBestRecipesCache(false)
	RecordBestRecipesCache(false)

	if got := testutil.ToFloat64(BestRecipesCache.WithLabelValues("hit")); got != hits+1 {
		t.Errorf("hits = %v", got)
	}
	if got := testutil.ToFloat64(BestRecipesCache.WithLabelValues("miss")); got != misses+2 {
		t.Errorf("misses = %v", got)
	}
}

func TestRecordCounterFailure(t *testing.T) {
	RecordCounterFailure("view_incr")
	if got := testutil.ToFloat64(CounterStoreFailures.WithLabelValues("view_incr")); got < 1 {
		t.Fatalf("failures = %v", got)
	}
}
