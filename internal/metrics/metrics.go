package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{
	0.001, // 1ms
	0.005, // 5ms
	0.01,  // 10ms
	0.025, // 25ms
	0.05,  // 50ms
	0.1,   // 100ms
	0.25,  // 250ms
	0.5,   // 500ms
	1.0,   // 1s
	2.5,   // 2.5s
	5.0,   // 5s
}

var (
	// QueryDuration tracks repository round-trips by operation.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blooddrive_query_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"operation", "status"},
	)

	// HTTPRequestDuration tracks HTTP handlers by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blooddrive_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route", "code"},
	)

	// RecordChangesPublished counts change events handed to the queue.
	RecordChangesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blooddrive_record_changes_published_total",
			Help: "Record change events published, by resource and outcome",
		},
		[]string{"resource", "status"},
	)
)

// ObserveQuery records the duration of a repository operation started at start.
func ObserveQuery(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	QueryDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

func RecordPublish(resource string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	RecordChangesPublished.WithLabelValues(resource, status).Inc()
}

// Track starts timing operation; call the returned func with the final error.
func Track(operation string) func(error) {
	start := time.Now()
	return func(err error) {
		ObserveQuery(operation, start, err)
	}
}
