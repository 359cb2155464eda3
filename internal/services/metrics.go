package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the diary API
type Metrics struct {
	// Entry writes by operation: create, update, delete
	EntryWrites *prometheus.CounterVec
	// Entry write failures by operation
	EntryWriteErrors *prometheus.CounterVec

	// Analytics lookups by cache result: hit or miss
	AnalyticsLookups    *prometheus.CounterVec
	AggregationDuration prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. A nil reg uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		EntryWrites: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dailythought_entry_writes_total",
			Help: "Total number of diary entry writes by operation",
		}, []string{"op"}),

		EntryWriteErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dailythought_entry_write_errors_total",
			Help: "Total number of failed diary entry writes by operation",
		}, []string{"op"}),

		AnalyticsLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dailythought_analytics_lookups_total",
			Help: "Mood analytics requests by cache result",
		}, []string{"result"}),

		AggregationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dailythought_aggregation_duration_seconds",
			Help:    "Time spent loading and aggregating a user's entries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dailythought_http_requests_total",
			Help: "HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dailythought_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) write(op string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.EntryWriteErrors.WithLabelValues(op).Inc()
		return
	}
	m.EntryWrites.WithLabelValues(op).Inc()
}
