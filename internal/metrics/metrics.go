package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Record intake metrics
	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsewatch_records_total",
			Help: "Total number of heartbeat records processed",
		},
		[]string{"status"},
	)

	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsewatch_batches_total",
			Help: "Total number of monitor batches processed",
		},
		[]string{"outcome"},
	)

	// Detection metrics
	AlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pulsewatch_alerts_total",
			Help: "Total number of alerts emitted",
		},
	)

	ServicesMonitored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulsewatch_services_monitored",
			Help: "Distinct services observed in the most recent batch",
		},
	)

	DetectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pulsewatch_detection_duration_seconds",
			Help:    "Duration of one validate-and-detect pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// ObserveRun records the metrics for one completed monitor pass
func ObserveRun(valid, invalid, alerts, services int, durationSeconds float64) {
	RecordsTotal.WithLabelValues("valid").Add(float64(valid))
	RecordsTotal.WithLabelValues("invalid").Add(float64(invalid))
	AlertsTotal.Add(float64(alerts))
	ServicesMonitored.Set(float64(services))
	DetectionDuration.Observe(durationSeconds)
	BatchesTotal.WithLabelValues("ok").Inc()
}
