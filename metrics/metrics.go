// Package metrics provides Prometheus metrics for the rates service.
// HTTP metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// Dataset metrics:
//   - vat_rate_lookups_total: Counter with operation and result (hit/miss) labels
//   - vat_dataset_loads_total: Counter with outcome label
//   - vat_dataset_age_days: Gauge, age of the snapshot version date
//   - vat_dataset_countries: Gauge, number of jurisdictions loaded
//
// All metrics are registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets",
		},
	)

	RateLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vat_rate_lookups_total",
			Help: "Country code lookups by operation and result",
		},
		[]string{"operation", "result"},
	)

	DatasetLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vat_dataset_loads_total",
			Help: "Attempts to load the rates snapshot by outcome",
		},
		[]string{"outcome"},
	)

	DatasetAgeDays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vat_dataset_age_days",
			Help: "Days since the snapshot version date",
		},
	)

	DatasetCountries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vat_dataset_countries",
			Help: "Number of jurisdictions in the loaded snapshot",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(RateLookupsTotal)
	prometheus.MustRegister(DatasetLoadsTotal)
	prometheus.MustRegister(DatasetAgeDays)
	prometheus.MustRegister(DatasetCountries)
}

// ObserveLookup records a hit or miss for a lookup operation
func ObserveLookup(operation string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	RateLookupsTotal.WithLabelValues(operation, result).Inc()
}
