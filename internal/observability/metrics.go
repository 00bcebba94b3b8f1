package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	trackRequestsTotal    *prometheus.CounterVec
	trackLatencySeconds   *prometheus.HistogramVec
	trackErrorsTotal      *prometheus.CounterVec
	visitsRecordedTotal   *prometheus.CounterVec
	aggregateQueryLatency *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the tracking surface.
func RegisterMetrics() {
	registerOnce.Do(func() {
		trackRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_requests_total",
			Help: "Total number of tracking API requests served.",
		}, []string{"method", "route", "status"})

		trackLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tracking_latency_seconds",
			Help:    "Latency distribution for tracking API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		trackErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracking_errors_total",
			Help: "Total number of error responses returned by tracking endpoints.",
		}, []string{"method", "route", "status"})

		visitsRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visits_recorded_total",
			Help: "Total number of visit rows appended, by action kind.",
		}, []string{"action"})

		aggregateQueryLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aggregate_query_latency_seconds",
			Help:    "Latency distribution for read-side aggregate queries.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"query"})

		prometheus.MustRegister(trackRequestsTotal, trackLatencySeconds, trackErrorsTotal, visitsRecordedTotal, aggregateQueryLatency)
	})
}

// TrackRequests exposes the counter for tracking requests.
func TrackRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return trackRequestsTotal
}

// TrackLatency exposes the latency histogram for tracking requests.
func TrackLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return trackLatencySeconds
}

// TrackErrors exposes the counter for tracking error responses.
func TrackErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return trackErrorsTotal
}

// VisitsRecorded exposes the per-action visit counter.
func VisitsRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return visitsRecordedTotal
}

// AggregateQueryLatency exposes the read-side query latency histogram.
func AggregateQueryLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return aggregateQueryLatency
}
