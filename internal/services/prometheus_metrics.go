package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	reportsGenerated     prometheus.Counter
	reportDuration       prometheus.Histogram
	reportEntries        prometheus.Gauge
	generationCalls      *prometheus.CounterVec
	generationDuration   prometheus.Histogram
	transactionsIngested *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		reportsGenerated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reports_generated_total",
				Help: "Total number of year-in-review reports generated",
			},
		),
		reportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "report_generation_duration_milliseconds",
				Help:    "Report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 16),
			},
		),
		reportEntries: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "report_entries",
				Help: "Number of entries in the most recently generated report",
			},
		),
		generationCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_calls_total",
				Help: "Total number of text-generation backend calls",
			},
			[]string{"metric", "status"},
		),
		generationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "generation_call_duration_milliseconds",
				Help:    "Text-generation call duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(16, 2, 12),
			},
		),
		transactionsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_ingested_total",
				Help: "Total number of ingested transaction records by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *PrometheusMetrics) RecordReportGenerated(durationMs float64, entries int) {
	m.reportsGenerated.Inc()
	m.reportDuration.Observe(durationMs)
	m.reportEntries.Set(float64(entries))
}

func (m *PrometheusMetrics) RecordGenerationCall(metric, status string, durationMs float64) {
	m.generationCalls.WithLabelValues(metric, status).Inc()
	m.generationDuration.Observe(durationMs)
}

func (m *PrometheusMetrics) RecordTransactionsIngested(accepted, rejected int) {
	m.transactionsIngested.WithLabelValues("accepted").Add(float64(accepted))
	m.transactionsIngested.WithLabelValues("rejected").Add(float64(rejected))
}
