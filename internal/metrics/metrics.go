// Package metrics provides Prometheus metrics for catalog_writer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog_writer"

var (
	// ScanRunsTotal counts scan runs by outcome.
	ScanRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_runs_total",
			Help:      "Total number of scan runs",
		},
		[]string{"status"},
	)

	// NewItemsTotal counts items discovered by scans.
	NewItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_new_items_total",
			Help:      "Total number of new catalog items inserted by scans",
		},
		[]string{"kind"},
	)

	// BreakerTripsTotal counts automatic pauses.
	BreakerTripsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breaker_trips_total",
			Help:      "Total number of times a scan tripped the auto-pause breaker",
		},
	)

	// BatchItemsTotal counts processed items by kind and resulting status.
	BatchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Total number of items processed by batch runs",
		},
		[]string{"kind", "status"},
	)

	// GenerationsTotal counts generation results by mode and origin.
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of generation results",
		},
		[]string{"mode", "origin"},
	)

	// BatchDuration measures batch run duration.
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Duration of batch runs in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)
)

// RecordScan records a finished scan run.
func RecordScan(status string, newByKind map[string]int, tripped bool) {
	ScanRunsTotal.WithLabelValues(status).Inc()
	for kind, n := range newByKind {
		NewItemsTotal.WithLabelValues(kind).Add(float64(n))
	}
	if tripped {
		BreakerTripsTotal.Inc()
	}
}

// RecordItem records the final status of one batch item.
func RecordItem(kind, status string) {
	BatchItemsTotal.WithLabelValues(kind, status).Inc()
}

// RecordGeneration records where a generation result came from.
func RecordGeneration(mode, origin string) {
	GenerationsTotal.WithLabelValues(mode, origin).Inc()
}

// RecordBatch records a finished batch run.
func RecordBatch(seconds float64) {
	BatchDuration.Observe(seconds)
}
