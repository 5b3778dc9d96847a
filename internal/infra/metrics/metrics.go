// Package metrics holds the domain counters. HTTP metrics live with the
// middleware that records them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_created_total",
			Help: "Total number of records created through the API",
		},
		[]string{"kind"},
	)

	recordFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_fetch_errors_total",
			Help: "Total number of failed record reads and writes",
		},
		[]string{"kind"},
	)

	queryCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_total",
			Help: "Query cache lookups by result",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)

	skippedSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "best_effort_step_failures_total",
			Help: "Best-effort write steps that failed and were skipped",
		},
		[]string{"step"},
	)

	emailsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_queue_processed_total",
			Help: "Queued emails processed by outcome",
		},
		[]string{"status"},
	)
)

func RecordCreated(kind string) {
	recordsCreated.WithLabelValues(kind).Inc()
}

func RecordFetchError(kind string) {
	recordFetchErrors.WithLabelValues(kind).Inc()
}

func CacheHit()  { queryCache.WithLabelValues("hit").Inc() }
func CacheMiss() { queryCache.WithLabelValues("miss").Inc() }

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func RecordSkippedStep(step string) {
	skippedSteps.WithLabelValues(step).Inc()
}

func RecordEmail(status string) {
	emailsProcessed.WithLabelValues(status).Inc()
}
