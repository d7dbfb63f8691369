package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("POST", "/api/v1/brands", 42*time.Millisecond)
	m.IncMutation("brand", "create")
	m.IncMutation("brand", "create")
	m.IncMutationFailure("brand", "VALIDATION_ERROR")

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("brand", "create")); got != 2 {
		t.Fatalf("expected 2 mutations, got %v", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues("brand", "VALIDATION_ERROR")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", time.Second)
	m.IncMutation("", "")
	m.IncMutationFailure("", "")

	empty := NewHTTPMetrics(nil)
	empty.IncMutation("brand", "create")
}
