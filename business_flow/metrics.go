package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Stored ratings partitioned by preference
	ratingSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_rating_submissions_total",
			Help: "Number of email ratings stored",
		},
		[]string{"preference"},
	)

	// Submissions that stored nothing, by reason (invalid_input, storage_error)
	ratingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_rating_rejections_total",
			Help: "Number of email rating submissions that were not stored",
		},
		[]string{"reason"},
	)

	// Completed exports by format
	ratingExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_rating_exports_total",
			Help: "Number of rating exports produced",
		},
		[]string{"format"},
	)

	// Rows written per export
	ratingExportRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_rating_export_rows",
			Help:    "Rows written per rating export",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
		[]string{"format"},
	)
)
