// Package observability exposes the service's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConversionsTotal counts finished conversions by bank and outcome.
	ConversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stmtkit_conversions_total",
			Help: "Total number of statement conversions",
		},
		[]string{"bank", "outcome"},
	)

	// ConversionDuration tracks end-to-end conversion latency.
	ConversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stmtkit_conversion_duration_seconds",
			Help:    "Statement conversion duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"bank"},
	)

	// RowsDropped counts raw rows that did not survive normalization.
	RowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stmtkit_rows_dropped_total",
			Help: "Raw statement rows dropped during normalization",
		},
		[]string{"bank"},
	)

	// ActiveConversions tracks conversions currently in flight.
	ActiveConversions = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stmtkit_active_conversions",
			Help: "Number of conversions currently running",
		},
		[]string{"bank"},
	)
)
