package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestedRows counts grade rows accepted through /api/upload.
	IngestedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gradebook_ingested_rows_total",
			Help: "Total number of grade rows upserted from CSV uploads",
		},
	)

	// GradePctHistogram observes each ingested grade as a percentage
	// of its assignment's max score. Over-max scores fall into the
	// +Inf bucket.
	GradePctHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gradebook_grade_pct",
			Help:    "Distribution of ingested grade percentage scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// APIRequestDuration observes handler latency by route.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
