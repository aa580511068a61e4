// Package metrics exposes the engine's prometheus collectors. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	searches        *prometheus.CounterVec
	searchDuration  *prometheus.HistogramVec
	categorized     *prometheus.CounterVec
	categorizeRuns  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	reconciledCount prometheus.Gauge
}

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return registry
}

func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Metrics{
		searches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aitools_search_requests_total",
				Help: "Search requests by the path that produced the result",
			},
			[]string{"path"},
		),
		searchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aitools_search_duration_seconds",
				Help:    "Duration of search requests in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"path"},
		),
		categorized: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aitools_categorize_tools_total",
				Help: "Tools processed by categorization runs",
			},
			[]string{"outcome"},
		),
		categorizeRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aitools_categorize_runs_total",
				Help: "Categorization runs by final status",
			},
			[]string{"status"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aitools_http_requests_total",
				Help: "HTTP requests by route pattern and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aitools_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		reconciledCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "aitools_categories_reconciled",
				Help: "Categories touched by the last count reconcile",
			},
		),
	}
}

func (m *Metrics) ObserveSearch(path string, d time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(path).Inc()
	m.searchDuration.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) ObserveCategorized(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.categorized.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) ObserveCategorizeRun(status string) {
	if m == nil {
		return
	}
	m.categorizeRuns.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) SetReconciled(n int64) {
	if m == nil {
		return
	}
	m.reconciledCount.Set(float64(n))
}
