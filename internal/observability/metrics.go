package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "lilibridge"

// Metrics aggregates the adapter's Prometheus instruments on a private
// registry. A nil *Metrics is valid; every recording method is a no-op,
// which keeps metrics optional in tests.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	streamChunks    prometheus.Counter
}

// NewMetrics creates and registers all instruments (DI constructor).
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status code.",
		}, []string{"route", "status"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_request_seconds",
			Help:      "Latency of Lili website-chat calls, by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		streamChunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stream_chunks_emitted_total",
			Help:      "SSE chunk events written to clients.",
		}),
	}

	m.registry.MustRegister(m.requestsTotal, m.upstreamLatency, m.streamChunks)

	return m
}

// Handler returns the /metrics scrape handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// RecordRequest counts one handled HTTP request.
func (m *Metrics) RecordRequest(route string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveUpstream records the duration of one upstream call.
func (m *Metrics) ObserveUpstream(elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.upstreamLatency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// AddStreamChunks counts SSE chunk events flushed to a client.
func (m *Metrics) AddStreamChunks(count int) {
	if m == nil {
		return
	}
	m.streamChunks.Add(float64(count))
}
