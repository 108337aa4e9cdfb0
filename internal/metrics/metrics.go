// Package metrics records scoring and optimization counters in a private
// Prometheus registry that can be dumped to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

// Recorder owns a registry and the lcaopt collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	recordsScored     *prometheus.CounterVec
	recordCO2         prometheus.Histogram
	candidatesFound   prometheus.Counter
	operationDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		recordsScored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lcaopt_records_scored_total",
				Help: "Total number of input records scored",
			},
			[]string{"outcome"},
		),
		recordCO2: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lcaopt_record_co2_kg",
				Help:    "Total CO2 emissions per scored record in kg",
				Buckets: prometheus.ExponentialBuckets(10, 2, 12),
			},
		),
		candidatesFound: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lcaopt_optimization_candidates_total",
				Help: "Total number of improving candidates found by optimization",
			},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "lcaopt_operation_duration_seconds",
				Help: "Duration of engine operations in seconds",
			},
			[]string{"operation"},
		),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveScored records one scored record.
func (r *Recorder) ObserveScored(totalCO2 float64) {
	r.recordsScored.WithLabelValues(OutcomeOK).Inc()
	r.recordCO2.Observe(totalCO2)
}

// ObserveRejected records one record that failed validation.
func (r *Recorder) ObserveRejected() {
	r.recordsScored.WithLabelValues(OutcomeInvalid).Inc()
}

// ObserveCandidates records the number of candidates an optimization found.
func (r *Recorder) ObserveCandidates(n int) {
	r.candidatesFound.Add(float64(n))
}

// ObserveDuration records how long an operation took.
func (r *Recorder) ObserveDuration(operation string, d time.Duration) {
	r.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
