// Package metrics provides Prometheus metrics for meritsim generation runs.
//
// Runs are batch jobs, so nothing is served over HTTP. The registry is
// dumped to a node-exporter style textfile at the end of a run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the collectors for one registry.
type Manager struct {
	namespace      string
	subsystem      string
	pointsBuckets  []float64
	latencyBuckets []float64
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Workflow outcomes
	submissions        *prometheus.CounterVec
	rawPoints          *prometheus.HistogramVec
	payoutTotal        prometheus.Counter
	submissionsSkipped *prometheus.CounterVec

	// Actors
	actorsProfiled prometheus.Gauge
	actorsSkipped  *prometheus.CounterVec
	achievements   prometheus.Counter

	// Run timing
	generationDuration prometheus.Histogram

	// Sinks
	sinkWriteLatency *prometheus.HistogramVec
	sinkErrors       *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "meritsim",
		subsystem:      "generator",
		pointsBuckets:  []float64{5, 10, 20, 30, 50, 75, 100, 150, 250},
		latencyBuckets: prometheus.DefBuckets,
		constLabels:    map[string]string{},
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.submissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "submissions_total",
		Help:        "Generated submissions by category and final status",
		ConstLabels: m.constLabels,
	}, []string{"category", "status"})

	m.rawPoints = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "raw_points",
		Help:        "Distribution of computed raw points per submission",
		Buckets:     m.pointsBuckets,
		ConstLabels: m.constLabels,
	}, []string{"policy"})

	m.payoutTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "payout_points_total",
		Help:        "Sum of points credited to actors by approved submissions",
		ConstLabels: m.constLabels,
	})

	m.submissionsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "submissions_skipped_total",
		Help:        "Submission attempts dropped before resolution",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.actorsProfiled = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "actors_profiled",
		Help:        "Actors that went through activity profiling in the last run",
		ConstLabels: m.constLabels,
	})

	m.actorsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "actors_skipped_total",
		Help:        "Actors that produced no submissions",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.achievements = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "achievements_total",
		Help:        "Achievements recorded for high-value approved submissions",
		ConstLabels: m.constLabels,
	})

	m.generationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "generation_duration_milliseconds",
		Help:        "Wall time of a full generation run in milliseconds",
		Buckets:     []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		ConstLabels: m.constLabels,
	})

	m.sinkWriteLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "sink",
		Name:        "write_latency_milliseconds",
		Help:        "Time spent writing a run to a sink",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"sink"})

	m.sinkErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "sink",
		Name:        "errors_total",
		Help:        "Failed sink writes",
		ConstLabels: m.constLabels,
	}, []string{"sink"})
}

// RecordSubmission counts a resolved submission.
func (m *Manager) RecordSubmission(category, status string) {
	m.submissions.WithLabelValues(category, status).Inc()
}

// RecordRawPoints observes the raw points computed by a policy.
func (m *Manager) RecordRawPoints(policy string, points int) {
	m.rawPoints.WithLabelValues(policy).Observe(float64(points))
}

// RecordPayout adds credited points.
func (m *Manager) RecordPayout(points int) {
	if points > 0 {
		m.payoutTotal.Add(float64(points))
	}
}

// RecordSubmissionSkipped counts a dropped submission attempt.
func (m *Manager) RecordSubmissionSkipped(reason string) {
	m.submissionsSkipped.WithLabelValues(reason).Inc()
}

// UpdateActorsProfiled sets the profiled actor gauge.
func (m *Manager) UpdateActorsProfiled(n int) {
	m.actorsProfiled.Set(float64(n))
}

// RecordActorSkipped counts an actor that produced nothing.
func (m *Manager) RecordActorSkipped(reason string) {
	m.actorsSkipped.WithLabelValues(reason).Inc()
}

// RecordAchievement counts a recorded achievement.
func (m *Manager) RecordAchievement() {
	m.achievements.Inc()
}

// RecordGenerationDuration observes a run duration in milliseconds.
func (m *Manager) RecordGenerationDuration(ms float64) {
	m.generationDuration.Observe(ms)
}

// RecordSinkWrite observes a sink write latency in milliseconds.
func (m *Manager) RecordSinkWrite(sink string, ms float64) {
	m.sinkWriteLatency.WithLabelValues(sink).Observe(ms)
}

// RecordSinkError counts a failed sink write.
func (m *Manager) RecordSinkError(sink string) {
	m.sinkErrors.WithLabelValues(sink).Inc()
}

// Package-level helpers backed by the global manager.

// Global returns the process-wide manager.
func Global() *Manager { return globalManager }

// RecordSubmission counts a resolved submission on the global manager.
func RecordSubmission(category, status string) { globalManager.RecordSubmission(category, status) }

// RecordRawPoints observes raw points on the global manager.
func RecordRawPoints(policy string, points int) { globalManager.RecordRawPoints(policy, points) }

// RecordPayout adds credited points on the global manager.
func RecordPayout(points int) { globalManager.RecordPayout(points) }

// RecordSubmissionSkipped counts a dropped submission on the global manager.
func RecordSubmissionSkipped(reason string) { globalManager.RecordSubmissionSkipped(reason) }

// UpdateActorsProfiled sets the profiled actor gauge on the global manager.
func UpdateActorsProfiled(n int) { globalManager.UpdateActorsProfiled(n) }

// RecordActorSkipped counts a skipped actor on the global manager.
func RecordActorSkipped(reason string) { globalManager.RecordActorSkipped(reason) }

// RecordAchievement counts an achievement on the global manager.
func RecordAchievement() { globalManager.RecordAchievement() }

// RecordGenerationDuration observes a run duration on the global manager.
func RecordGenerationDuration(ms float64) { globalManager.RecordGenerationDuration(ms) }

// RecordSinkWrite observes a sink write on the global manager.
func RecordSinkWrite(sink string, ms float64) { globalManager.RecordSinkWrite(sink, ms) }

// RecordSinkError counts a sink failure on the global manager.
func RecordSinkError(sink string) { globalManager.RecordSinkError(sink) }

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile dumps the given gatherer in text exposition format to path.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
