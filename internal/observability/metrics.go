package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects client-side Prometheus metrics for the console.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mutationsTotal  *prometheus.CounterVec
}

// NewMetrics initialises a private registry and the base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "barbox_api_requests_total",
		Help: "Backend API requests by resource, method and status code.",
	}, []string{"resource", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "barbox_api_request_duration_seconds",
		Help:    "Backend API request latency per resource.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "barbox_mutations_total",
		Help: "List mutations by entity, intent and outcome.",
	}, []string{"entity", "intent", "outcome"})
	registry.MustRegister(requests, duration, mutations)
	return &Metrics{
		registry:        registry,
		requestsTotal:   requests,
		requestDuration: duration,
		mutationsTotal:  mutations,
	}
}

// ObserveRequest records one finished API call. code 0 means the request
// never got a response.
func (m *Metrics) ObserveRequest(resource, method string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "none"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.requestsTotal.WithLabelValues(resource, method, label).Inc()
	m.requestDuration.WithLabelValues(resource).Observe(elapsed.Seconds())
}

// ObserveMutation records a list mutation outcome ("ok", "error", "rejected").
func (m *Metrics) ObserveMutation(entity, intent, outcome string) {
	if m == nil {
		return
	}
	m.mutationsTotal.WithLabelValues(entity, intent, outcome).Inc()
}

// Registerer exposes the registry for custom metrics.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// Gatherer exposes the registry for dumping.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.DefaultGatherer
	}
	return m.registry
}
