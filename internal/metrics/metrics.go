package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wesmun/dbtools/internal/migrate"
)

const namespace = "wesmun_db"

// Recorder collects run metrics. It implements migrate.Observer.
type Recorder struct {
	stepsTotal   *prometheus.CounterVec
	rowsTotal    *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	lastSuccess  *prometheus.GaugeVec
	lastRun      *prometheus.GaugeVec
}

// NewRecorder builds the collectors. Call Register before use.
func NewRecorder() *Recorder {
	return &Recorder{
		stepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Total number of plan steps executed, by outcome",
		}, []string{"plan", "outcome"}),
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_affected_total",
			Help:      "Rows affected by plan steps",
		}, []string{"plan", "step"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Execution time of plan steps",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"plan"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run of a plan",
		}, []string{"plan"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run of a plan succeeded, 0 otherwise",
		}, []string{"plan"}),
	}
}

// Register registers Prometheus collectors. Call once at startup.
func (r *Recorder) Register(registry *prometheus.Registry) {
	registry.MustRegister(r.stepsTotal, r.rowsTotal, r.stepDuration, r.lastSuccess, r.lastRun)
}

// StepCompleted implements migrate.Observer.
func (r *Recorder) StepCompleted(plan string, result migrate.StepResult) {
	r.stepsTotal.WithLabelValues(plan, "applied").Inc()
	r.rowsTotal.WithLabelValues(plan, result.Name).Add(float64(result.RowsAffected))
	r.stepDuration.WithLabelValues(plan).Observe(result.Duration.Seconds())
}

// StepRolledBack implements migrate.Observer. Rows of undone steps are not counted.
func (r *Recorder) StepRolledBack(plan string, _ migrate.StepResult) {
	r.stepsTotal.WithLabelValues(plan, "rolled_back").Inc()
}

// StepFailed implements migrate.Observer.
func (r *Recorder) StepFailed(plan, _ string, _ error) {
	r.stepsTotal.WithLabelValues(plan, "failed").Inc()
}

// RunFinished records the outcome of a whole run at now.
func (r *Recorder) RunFinished(plan string, err error, now time.Time) {
	if err != nil {
		r.lastRun.WithLabelValues(plan).Set(0)
		return
	}
	r.lastRun.WithLabelValues(plan).Set(1)
	r.lastSuccess.WithLabelValues(plan).Set(float64(now.Unix()))
}

// WriteTextfile writes every metric in registry to path in the node_exporter textfile format.
func WriteTextfile(path string, registry *prometheus.Registry) error {
	return prometheus.WriteToTextfile(path, registry)
}
