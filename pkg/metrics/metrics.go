package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// 1. HTTP Requests Total (Counter)
	// Counts how many requests arrive, labeled by method, path, and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nivada_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"}, // Labels
	)

	// 2. HTTP Request Duration (Histogram)
	// Measures server response time.
	// Critical for spotting OCR-bound requests, which run orders of
	// magnitude slower than structured extraction.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "nivada_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// Custom buckets covering from milliseconds (text decode) to minutes (multi-page OCR)
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// 3. Extraction Stage Outcomes (Counter)
	// One increment per cascade stage per document, labeled by stage name
	// and outcome (adopted, no-improvement, quality-skip,
	// capability-missing, execution-error). A rising capability-missing
	// count means a provider dropped out at startup.
	ExtractStageOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nivada_extract_stage_outcomes_total",
			Help: "Extraction cascade stage outcomes",
		},
		[]string{"stage", "outcome"},
	)

	// 4. Extraction Duration (Histogram)
	// Measures full pipeline time per document kind.
	ExtractDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nivada_extract_duration_seconds",
			Help:    "Duration of one extraction pipeline run in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)
)
