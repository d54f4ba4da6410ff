// Package observability holds the Prometheus collectors shared by handlers and repositories.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RepositoryLatency records MongoDB operation latency by operation and collection.
	RepositoryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freshfinds_repository_latency_seconds",
		Help:    "MongoDB operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection"})

	// RepositoryErrors counts MongoDB operations that returned an error, not-found included.
	RepositoryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freshfinds_repository_errors_total",
		Help: "Total number of failed MongoDB operations",
	}, []string{"operation", "collection"})

	// DiscoveryDuration records end-to-end discovery latency by outcome.
	DiscoveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freshfinds_discovery_duration_seconds",
		Help:    "Deal discovery request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome", "spatial"})

	// DiscoveryResults records how many deals each successful discovery returned.
	DiscoveryResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "freshfinds_discovery_results",
		Help:    "Number of deals returned per discovery request",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
)

// TrackRepository returns a function that records the operation latency when called (e.g. defer).
func TrackRepository(operation, collection string) func(err error) {
	start := time.Now()
	return func(err error) {
		RepositoryLatency.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
		if err != nil {
			RepositoryErrors.WithLabelValues(operation, collection).Inc()
		}
	}
}

// ObserveDiscovery records one discovery request.
func ObserveDiscovery(outcome string, spatial bool, start time.Time, results int) {
	label := "false"
	if spatial {
		label = "true"
	}
	DiscoveryDuration.WithLabelValues(outcome, label).Observe(time.Since(start).Seconds())
	if outcome == "ok" {
		DiscoveryResults.Observe(float64(results))
	}
}
