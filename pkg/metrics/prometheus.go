// Package metrics provides Prometheus metrics for the k12lms engine and
// dashboards. Metrics live on a private registry and are exported to a file
// in the node_exporter textfile format; there is no HTTP endpoint.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric registered by the application.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	registry         prometheus.Registerer

	// Engine metrics
	gradesIssued    *prometheus.CounterVec
	gradeScore      prometheus.Histogram
	predictions     *prometheus.CounterVec
	recommendations *prometheus.CounterVec

	// Dashboard activity
	submissionsReceived prometheus.Counter
	assignmentsCreated  prometheus.Counter

	// Grading pipeline
	gradingLatency       prometheus.Histogram
	gradingQueueSize     prometheus.Gauge
	gradingQueueCapacity prometheus.Gauge
	gradingWorkers       prometheus.Gauge

	// Store
	storeRecords *prometheus.GaugeVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // private registry, no Go runtime collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "k12lms",
		subsystem:        "engine",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
		scoreBuckets:     []float64{60, 70, 80, 90, 100},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.gradesIssued = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "grades_issued_total",
		Help:      "Automatic grades issued by difficulty and feedback band",
	}, []string{"difficulty", "band"})

	m.gradeScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "grade_score",
		Help:      "Distribution of automatic grade scores",
		Buckets:   m.scoreBuckets,
	})

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Performance predictions by trend",
	}, []string{"trend"})

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_total",
		Help:      "Recommendation items produced by kind (path or content)",
	}, []string{"kind"})

	m.submissionsReceived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "dashboard",
		Name:      "submissions_total",
		Help:      "Submissions accepted from students",
	})

	m.assignmentsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "dashboard",
		Name:      "assignments_created_total",
		Help:      "Assignments created by teachers",
	})

	m.gradingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "grading",
		Name:      "latency_milliseconds",
		Help:      "Time to grade one queued submission in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.gradingQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "grading",
		Name:      "queue_size",
		Help:      "Jobs waiting in the grading queue",
	})

	m.gradingQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "grading",
		Name:      "queue_capacity",
		Help:      "Capacity of the grading queue",
	})

	m.gradingWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "grading",
		Name:      "workers",
		Help:      "Workers in the current grading pool",
	})

	m.storeRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "records",
		Help:      "Records held in memory by entity",
	}, []string{"entity"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "errors_total",
		Help:      "Errors by component and kind",
	}, []string{"component", "kind"})
}

// RecordGrade counts an automatic grade and observes its score.
func RecordGrade(difficulty, band string, score float64) {
	globalManager.gradesIssued.WithLabelValues(difficulty, band).Inc()
	globalManager.gradeScore.Observe(score)
}

// RecordPrediction counts a performance prediction.
func RecordPrediction(trend string) {
	globalManager.predictions.WithLabelValues(trend).Inc()
}

// RecordRecommendations adds n produced recommendation items of a kind.
func RecordRecommendations(kind string, n int) {
	globalManager.recommendations.WithLabelValues(kind).Add(float64(n))
}

// RecordSubmission counts an accepted submission.
func RecordSubmission() {
	globalManager.submissionsReceived.Inc()
}

// RecordAssignmentCreated counts a new assignment.
func RecordAssignmentCreated() {
	globalManager.assignmentsCreated.Inc()
}

// RecordGradingLatency observes the time spent grading one job.
func RecordGradingLatency(latencyMs float64) {
	globalManager.gradingLatency.Observe(latencyMs)
}

// UpdateGradingQueue sets the grading queue size and capacity.
func UpdateGradingQueue(size, capacity int) {
	globalManager.gradingQueueSize.Set(float64(size))
	globalManager.gradingQueueCapacity.Set(float64(capacity))
}

// UpdateGradingQueueSize sets the grading queue size.
func UpdateGradingQueueSize(size int) {
	globalManager.gradingQueueSize.Set(float64(size))
}

// UpdateGradingWorkers sets the size of the grading pool.
func UpdateGradingWorkers(count int) {
	globalManager.gradingWorkers.Set(float64(count))
}

// UpdateStoreRecords sets the record count for an entity kind.
func UpdateStoreRecords(entity string, count int) {
	globalManager.storeRecords.WithLabelValues(entity).Set(float64(count))
}

// RecordErrorByComponent counts an error.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the registry backing the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric to path in the textfile collector format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}
