// Package metrics holds the Prometheus collectors and the in-process request
// window behind the admin metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors groups the Prometheus metrics exported by the server.
type Collectors struct {
	// HTTPDuration observes request latency by method, route and status class
	HTTPDuration *prometheus.HistogramVec

	// CostComputations counts SystemCost computations by outcome
	CostComputations *prometheus.CounterVec

	// AnalyticsDuration observes how long an analytics rollup takes
	AnalyticsDuration prometheus.Histogram

	// AnalyticsCache counts analytics cache lookups by result (hit, miss)
	AnalyticsCache *prometheus.CounterVec
}

// NewCollectors creates the collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planning_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		CostComputations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planning_cost_computations_total",
				Help: "Total number of system cost computations",
			},
			[]string{"result"},
		),
		AnalyticsDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "planning_analytics_duration_seconds",
				Help:    "Time spent building an analytics rollup",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		AnalyticsCache: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planning_analytics_cache_total",
				Help: "Analytics cache lookups",
			},
			[]string{"result"},
		),
	}
}

// ObserveRequest records one HTTP request. status is collapsed to its class ("2xx").
func (c *Collectors) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPDuration.WithLabelValues(method, route, statusClass(status)).Observe(d.Seconds())
}

// CountComputation records the outcome of a cost computation.
func (c *Collectors) CountComputation(err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.CostComputations.WithLabelValues(result).Inc()
}

// CountCache records an analytics cache lookup.
func (c *Collectors) CountCache(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.AnalyticsCache.WithLabelValues(result).Inc()
}

// ObserveAnalytics records the duration of an analytics rollup.
func (c *Collectors) ObserveAnalytics(d time.Duration) {
	if c == nil {
		return
	}
	c.AnalyticsDuration.Observe(d.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
