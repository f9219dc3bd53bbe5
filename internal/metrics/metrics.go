// Package metrics exposes Prometheus instrumentation for the ingestion
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsPersisted counts price rows written per ingestion source.
	RowsPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_persisted_total",
		Help: "Total number of price rows persisted by source",
	}, []string{"source"})

	// RowsRejected counts rows that failed validation.
	RowsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_rejected_total",
		Help: "Total number of extracted rows rejected by validation",
	}, []string{"source"})

	// PersistFailures counts row-level persistence failures (batch continued).
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_row_persist_failures_total",
		Help: "Total number of rows skipped due to persistence errors",
	})

	// ExtractionFailures counts batch-fatal extraction service failures.
	ExtractionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_extraction_failures_total",
		Help: "Total number of failed extraction service calls",
	})

	// CatalogEntitiesCreated counts catalog growth by entity kind.
	CatalogEntitiesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_catalog_entities_created_total",
		Help: "Total number of catalog entities created during ingestion by kind",
	}, []string{"kind"}) // kind: size, brand, model

	// RunDuration tracks end-to-end ingestion run time.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ingest_run_duration_seconds",
		Help:    "End-to-end duration of ingestion runs",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
	})
)
