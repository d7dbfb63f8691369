package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request timings and catalog mutation outcomes.
type HTTPMetrics struct {
	duration  *prometheus.HistogramVec
	mutations *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Successful catalog mutations by entity and operation.",
	}, []string{"entity", "operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutation_failures_total",
		Help: "Rejected catalog mutations by entity and error code.",
	}, []string{"entity", "code"})
	reg.MustRegister(duration, mutations, failures)
	return &HTTPMetrics{
		duration:  duration,
		mutations: mutations,
		failures:  failures,
	}
}

// ObserveRequest records the duration for the given method and route.
func (m *HTTPMetrics) ObserveRequest(method, route string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route)).Observe(duration.Seconds())
}

// IncMutation counts a committed mutation for the entity.
func (m *HTTPMetrics) IncMutation(entity, operation string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(entity), normalizeLabel(operation)).Inc()
}

// IncMutationFailure counts a rejected mutation for the entity.
func (m *HTTPMetrics) IncMutationFailure(entity, code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(entity), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
