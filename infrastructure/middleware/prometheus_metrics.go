package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/qiyas-prep/smartsearch/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It exposes search latency, request outcomes, result sizes and the mix of
// match tiers.
type PrometheusMetrics struct {
	searchLatency    *prometheus.HistogramVec
	searchRequests   *prometheus.CounterVec
	searchResults    *prometheus.GaugeVec
	matchTiers       *prometheus.CounterVec
	operationCounter *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// its collectors with reg. A nil reg selects the default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		searchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricSearchLatency,
				Help:    "Duration of search requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status", "filtered"},
		),
		searchRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSearchRequests,
				Help: "Total number of search requests by outcome.",
			},
			[]string{"status", "filtered"},
		),
		searchResults: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: MetricSearchResults,
				Help: "Number of results returned by the most recent search.",
			},
			[]string{"filtered"},
		),
		matchTiers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMatchTier,
				Help: "Total number of returned results by match tier.",
			},
			[]string{"match_type"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartsearch_operations_total",
				Help: "Total number of other engine operations.",
			},
			[]string{"operation"},
		),
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "smartsearch_operation_duration_seconds",
				Help:    "Duration of other engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// labelOr returns labels[key] or fallback when missing or empty.
func labelOr(labels map[string]string, key, fallback string) string {
	if v, ok := labels[key]; ok && v != "" {
		return v
	}
	return fallback
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	if operation == MetricSearchLatency {
		pm.searchLatency.WithLabelValues(
			labelOr(labels, "status", "unknown"),
			labelOr(labels, "filtered", "false"),
		).Observe(duration.Seconds())
		return
	}
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	switch metric {
	case MetricSearchRequests:
		pm.searchRequests.WithLabelValues(
			labelOr(labels, "status", "unknown"),
			labelOr(labels, "filtered", "false"),
		).Add(value)
	case MetricMatchTier:
		pm.matchTiers.WithLabelValues(labelOr(labels, "match_type", "unknown")).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values. Only the result-size gauge is exported.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64, labels map[string]string) {
	if metric != MetricSearchResults {
		return
	}
	pm.searchResults.WithLabelValues(labelOr(labels, "filtered", "false")).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in the general operation histogram.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, _ map[string]string) {
	pm.operationLatency.WithLabelValues(metric).Observe(value)
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
