package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service collectors and the registry they are exposed from.
type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	submissions     *prometheus.CounterVec
	activeDrafts    prometheus.Gauge
	evictedDrafts   prometheus.Counter
}

// New registers the service collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderdesk",
			Name:      "backend_requests_total",
			Help:      "Requests sent to the REST backend by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "orderdesk",
			Name:      "backend_request_duration_seconds",
			Help:      "REST backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orderdesk",
			Name:      "order_submissions_total",
			Help:      "Order submissions by flow and outcome.",
		}, []string{"flow", "outcome"}),
		activeDrafts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "orderdesk",
			Name:      "drafts_active",
			Help:      "Wizard drafts currently held in memory.",
		}),
		evictedDrafts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "orderdesk",
			Name:      "drafts_evicted_total",
			Help:      "Idle wizard drafts removed by the janitor.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.backendRequests,
		m.backendLatency,
		m.submissions,
		m.activeDrafts,
		m.evictedDrafts,
	)
	return m
}

// ObserveBackendRequest records one backend call. code 0 means a transport failure.
func (m *Metrics) ObserveBackendRequest(endpoint string, code int, elapsed time.Duration) {
	m.backendRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	m.backendLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveSubmission records a submission outcome.
func (m *Metrics) ObserveSubmission(flow string, ok bool) {
	outcome := "failed"
	if ok {
		outcome = "succeeded"
	}
	m.submissions.WithLabelValues(flow, outcome).Inc()
}

// SetActiveDrafts publishes the number of live drafts.
func (m *Metrics) SetActiveDrafts(n int) {
	m.activeDrafts.Set(float64(n))
}

// AddEvictedDrafts counts drafts dropped for inactivity.
func (m *Metrics) AddEvictedDrafts(n int) {
	m.evictedDrafts.Add(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
