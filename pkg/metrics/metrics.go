// Package metrics provides Prometheus collectors for the dispatch queue, the
// HTTP API and alert evaluation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/matside/pkg/adapter"
	"github.com/m-mizutani/matside/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors, registered on its own registry
type Metrics struct {
	registry *prometheus.Registry

	// dispatch queue
	QueueDepth           prometheus.Gauge
	QueueEnqueuedTotal   prometheus.Counter
	QueueWaitSeconds     prometheus.Histogram
	ProviderCallsTotal   *prometheus.CounterVec
	ProviderCallDuration prometheus.Histogram

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// alert evaluation
	AlertsTotal *prometheus.CounterVec
}

// New creates and registers all collectors plus the Go runtime collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.QueueDepth = factory.NewGauge(prometheus.GaugeOpts{
		Name: "matside_queue_depth",
		Help: "Number of generation calls waiting in the dispatch queue",
	})

	m.QueueEnqueuedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "matside_queue_enqueued_total",
		Help: "Total number of generation calls submitted to the dispatch queue",
	})

	m.QueueWaitSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "matside_queue_interval_wait_seconds",
		Help:    "Time the worker slept to honor the minimum interval before a call",
		Buckets: []float64{0, 1, 5, 10, 20, 30, 45, 60},
	})

	m.ProviderCallsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "matside_provider_calls_total",
		Help: "Total number of provider calls by outcome",
	}, []string{"status"})

	m.ProviderCallDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "matside_provider_call_duration_seconds",
		Help:    "Duration of provider calls in seconds",
		Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	})

	m.HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "matside_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "code"})

	m.HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matside_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	m.AlertsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "matside_alerts_total",
		Help: "Total number of alerts produced by evaluations",
	}, []string{"category", "type"})

	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Enqueued implements dispatch.Observer
func (m *Metrics) Enqueued(depth int) {
	m.QueueEnqueuedTotal.Inc()
	m.QueueDepth.Set(float64(depth))
}

// Issued implements dispatch.Observer
func (m *Metrics) Issued(wait time.Duration, depth int) {
	m.QueueWaitSeconds.Observe(wait.Seconds())
	m.QueueDepth.Set(float64(depth))
}

// Settled implements dispatch.Observer
func (m *Metrics) Settled(elapsed time.Duration, err error) {
	status := "success"
	switch {
	case adapter.IsRateLimited(err):
		status = "rate_limited"
	case err != nil:
		status = "error"
	}
	m.ProviderCallsTotal.WithLabelValues(status).Inc()
	m.ProviderCallDuration.Observe(elapsed.Seconds())
}

// RecordHTTPRequest records one served request. route is the route pattern,
// not the raw path.
func (m *Metrics) RecordHTTPRequest(route, method string, code int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordAlerts counts the alerts of one evaluation
func (m *Metrics) RecordAlerts(alerts []*model.Alert) {
	for _, a := range alerts {
		m.AlertsTotal.WithLabelValues(string(a.Category), string(a.Severity)).Inc()
	}
}
