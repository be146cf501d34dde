// Package metrics exposes Prometheus collectors for upstream fetches, cache
// lookups, registry rebuilds and inbound requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	UpstreamFetches  *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	CacheLookups     *prometheus.CounterVec
	RegistryRebuilds *prometheus.CounterVec
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New registers every collector, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UpstreamFetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoracle_upstream_fetches_total",
				Help: "Upstream page fetches by outcome",
			},
			[]string{"status"},
		),
		UpstreamDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scoracle_upstream_fetch_seconds",
				Help:    "Upstream fetch latency in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
			},
		),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoracle_cache_lookups_total",
				Help: "Response cache lookups by result",
			},
			[]string{"result"},
		),
		RegistryRebuilds: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoracle_team_registry_rebuilds_total",
				Help: "Team registry entries built from the upstream",
			},
			[]string{"league"},
		),
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoracle_http_requests_total",
				Help: "Inbound HTTP requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoracle_http_request_duration_seconds",
				Help:    "Inbound HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
	}
}

// UpstreamFetch implements fetch.Observer.
func (m *Metrics) UpstreamFetch(status string, elapsed time.Duration) {
	m.UpstreamFetches.WithLabelValues(status).Inc()
	m.UpstreamDuration.Observe(elapsed.Seconds())
}

// CacheLookup implements cache.Observer.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RegistryRebuild implements teams.Observer.
func (m *Metrics) RegistryRebuild(league string) {
	m.RegistryRebuilds.WithLabelValues(league).Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
