package adapter

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	m "podify.dev/pkg/podify/internal/model"
)

// ReportStore records conversion outcomes and persists them for node_exporter's
// textfile collector.
type ReportStore interface {
	RecordOutcome(fileType m.FileType, outcome m.Outcome)
	ObserveRun(duration time.Duration)
	SaveReport(path m.Path) error
}

// PrometheusReportStore keeps its collectors in a private registry so that
// several runs in one process never collide on the default registerer.
type PrometheusReportStore struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    prometheus.Gauge
}

// NewReportStore builds a store with freshly registered collectors.
func NewReportStore() *PrometheusReportStore {
	store := &PrometheusReportStore{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podify_conversions_total",
				Help: "Number of file conversions by file type and outcome.",
			},
			[]string{"file_type", "outcome"},
		),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "podify_run_duration_seconds",
			Help: "Wall time of the last conversion run.",
		}),
	}

	store.registry.MustRegister(store.conversions, store.duration)

	return store
}

// RecordOutcome increments the counter for the given file type and outcome.
func (s *PrometheusReportStore) RecordOutcome(fileType m.FileType, outcome m.Outcome) {
	s.conversions.WithLabelValues(string(fileType), outcome.String()).Inc()
}

// ObserveRun stores the duration of the run.
func (s *PrometheusReportStore) ObserveRun(duration time.Duration) {
	s.duration.Set(duration.Seconds())
}

// SaveReport writes every collector to path in the text exposition format.
func (s *PrometheusReportStore) SaveReport(path m.Path) error {
	if err := prometheus.WriteToTextfile(string(path), s.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}

	return nil
}

// Conversions exposes the counter vector for inspection.
func (s *PrometheusReportStore) Conversions() *prometheus.CounterVec {
	return s.conversions
}
