package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the flight operations service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Engine Metrics
	FlightTimeSplitsTotal  prometheus.Counter
	LogbookMutationsTotal  *prometheus.CounterVec
	HoursConflictRetries   prometheus.Counter
	ExpirationAlertsTotal  *prometheus.CounterVec
	JobDuration            *prometheus.HistogramVec
	AerodromesImportedLast prometheus.Gauge
}

// NewMetricsRegistry registers every metric on reg. Pass prometheus.DefaultRegisterer
// in the server and a fresh prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightops_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightops_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightops_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightops_cache_hits_total",
				Help: "Total cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightops_cache_misses_total",
				Help: "Total cache misses by cache name",
			},
			[]string{"cache"},
		),

		FlightTimeSplitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightops_flight_time_splits_total",
				Help: "Day/night flight time computations performed",
			},
		),
		LogbookMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightops_logbook_mutations_total",
				Help: "Logbook entry mutations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		HoursConflictRetries: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightops_hours_conflict_retries_total",
				Help: "Aircraft hour updates retried after losing a version check",
			},
		),
		ExpirationAlertsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightops_expiration_alerts_total",
				Help: "Expiration alerts sent by severity",
			},
			[]string{"severity"},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightops_job_duration_seconds",
				Help:    "Background job execution time in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
			[]string{"job_name"},
		),
		AerodromesImportedLast: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flightops_aerodromes_imported",
				Help: "Aerodromes written by the last reference data import",
			},
		),
	}
}
