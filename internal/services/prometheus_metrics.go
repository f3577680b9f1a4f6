package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics records application metrics via prometheus collectors
type PrometheusMetrics struct {
	uploadsTotal       *prometheus.CounterVec
	extractionsTotal   *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	exportsTotal       *prometheus.CounterVec
	authEventsTotal    *prometheus.CounterVec
	receiptMutations   *prometheus.CounterVec
}

// NewPrometheusMetrics registers and returns the metrics recorder
func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		uploadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_uploads_total",
				Help: "Total number of receipt files uploaded",
			},
			[]string{"status"},
		),
		extractionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_extractions_total",
				Help: "Total number of extraction attempts",
			},
			[]string{"status"},
		),
		extractionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "receipt_extraction_duration_milliseconds",
				Help:    "Receipt extraction duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(50, 2, 10),
			},
		),
		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_exports_total",
				Help: "Total number of exports generated",
			},
			[]string{"format"},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event"},
		),
		receiptMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipt_mutations_total",
				Help: "Total number of receipt and item mutations",
			},
			[]string{"operation"},
		),
	}
}

func (m *PrometheusMetrics) RecordUpload(status string) {
	m.uploadsTotal.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) RecordExtraction(status string, durationMs float64) {
	m.extractionsTotal.WithLabelValues(status).Inc()
	m.extractionDuration.Observe(durationMs)
}

func (m *PrometheusMetrics) RecordExport(format string) {
	m.exportsTotal.WithLabelValues(format).Inc()
}

func (m *PrometheusMetrics) RecordAuthEvent(event string) {
	m.authEventsTotal.WithLabelValues(event).Inc()
}

func (m *PrometheusMetrics) RecordReceiptMutation(operation string) {
	m.receiptMutations.WithLabelValues(operation).Inc()
}
