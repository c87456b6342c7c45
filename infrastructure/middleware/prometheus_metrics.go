// Package middleware provides cross-cutting concerns for the severity
// chart pipeline.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hedibmustapha/msni19/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides monitoring of aggregation volume, chart build
// latency, and export outcomes.
type PrometheusMetrics struct {
	executionLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	recordVolume     *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics with the given registerer. Passing nil
// registers with the default registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		executionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "severity_chart_operation_duration_seconds",
				Help:    "Execution time of aggregate, build, and export operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "severity_chart_operations_total",
				Help: "Total number of pipeline operations by outcome.",
			},
			[]string{"operation", "status"},
		),
		recordVolume: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "severity_chart_records",
				Help:    "Distribution of record counts per aggregation.",
				Buckets: prometheus.ExponentialBuckets(10, 4, 8),
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.executionLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	status, ok := labels["status"]
	if !ok {
		status = "success"
	}
	pm.operationCounter.WithLabelValues(metric, status).Add(value)
}

// RecordHistogram implements the MetricsCollector interface by
// recording values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	pm.recordVolume.WithLabelValues(metric).Observe(value)
}

// Compile-time verification that PrometheusMetrics implements
// MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
