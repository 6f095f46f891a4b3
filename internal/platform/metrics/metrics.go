// Package metrics holds the Prometheus collectors exported by the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the server.
type Metrics struct {
	registry *prometheus.Registry

	// Session metrics
	SessionsActive prometheus.Gauge
	SessionsOpened prometheus.Counter
	SessionsClosed *prometheus.CounterVec

	// Dispatch metrics
	DispatchTotal *prometheus.CounterVec

	// Upstream catalog metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		SessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "onet_mcp_sessions_active",
				Help: "Number of currently open event-stream sessions",
			},
		),
		SessionsOpened: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "onet_mcp_sessions_opened_total",
				Help: "Total number of event-stream sessions opened",
			},
		),
		SessionsClosed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onet_mcp_sessions_closed_total",
				Help: "Total number of event-stream sessions closed, by cause",
			},
			[]string{"cause"},
		),
		DispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onet_mcp_dispatch_total",
				Help: "Inbound messages posted to sessions, by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onet_mcp_upstream_requests_total",
				Help: "Catalog requests, by section and outcome",
			},
			[]string{"section", "outcome"},
		),
		UpstreamRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "onet_mcp_upstream_request_duration_seconds",
				Help:    "Duration of catalog requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"section"},
		),
	}

	registry.MustRegister(
		m.SessionsActive,
		m.SessionsOpened,
		m.SessionsClosed,
		m.DispatchTotal,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
	)

	return m
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SessionOpened records a newly registered session.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.SessionsOpened.Inc()
	m.SessionsActive.Inc()
}

// SessionClosed records a session teardown and its cause.
func (m *Metrics) SessionClosed(cause string) {
	if m == nil {
		return
	}
	m.SessionsActive.Dec()
	m.SessionsClosed.WithLabelValues(cause).Inc()
}

// Dispatched records the outcome of an inbound message post.
func (m *Metrics) Dispatched(outcome string) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(outcome).Inc()
}

// UpstreamFetched records one catalog request.
func (m *Metrics) UpstreamFetched(section, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(section, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(section).Observe(seconds)
}
