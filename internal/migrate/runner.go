package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/logger"
	"github.com/wesmun/dbtools/internal/util"
)

const previewLength = 100

// StepResult describes one executed step.
type StepResult struct {
	Name string
	// RowsAffected is the count reported for the last statement of the step.
	RowsAffected int64
	Duration     time.Duration
}

// Report summarizes a run. Steps lists only the steps that completed.
type Report struct {
	RunID      string
	Plan       string
	Steps      []StepResult
	StartedAt  time.Time
	Duration   time.Duration
	RolledBack bool
}

// Step returns the result for the named step.
func (r Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// RowsAffected sums the affected rows over all completed steps.
func (r Report) RowsAffected() int64 {
	var total int64
	for _, s := range r.Steps {
		total += s.RowsAffected
	}
	return total
}

// StepError reports the step that aborted a run.
type StepError struct {
	Plan string
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %s: %v", e.Plan, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Observer is told about every step outcome. For an atomic plan StepCompleted
// is delivered only after the commit; steps undone by a rollback are reported
// through StepRolledBack instead.
type Observer interface {
	StepCompleted(plan string, result StepResult)
	StepFailed(plan, step string, err error)
	StepRolledBack(plan string, result StepResult)
}

// Runner executes plans against a database.
type Runner struct {
	db        *gorm.DB
	log       *logrus.Entry
	runID     string
	observers []Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the entry steps are logged through.
func WithLogger(entry *logrus.Entry) Option {
	return func(r *Runner) { r.log = entry }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observers = append(r.observers, o) }
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// NewRunner returns a Runner bound to db.
func NewRunner(db *gorm.DB, opts ...Option) *Runner {
	r := &Runner{db: db, log: logger.Log(), runID: uuid.NewString()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the plan's steps in order and stops at the first failure.
// An atomic plan is rolled back as a whole when any step fails.
func (r *Runner) Run(ctx context.Context, plan Plan) (Report, error) {
	if err := plan.Validate(); err != nil {
		return Report{}, err
	}

	report := Report{RunID: r.runID, Plan: plan.Name, StartedAt: time.Now()}
	log := r.log.WithFields(logrus.Fields{"plan": plan.Name, "run_id": r.runID})

	apply := func(tx *gorm.DB) error {
		for _, step := range plan.Steps {
			if err := ctx.Err(); err != nil {
				return r.fail(plan.Name, step.Name, err)
			}
			log.WithField("step", step.Name).Debugf("executing %s", util.PreviewSQL(step.SQL, previewLength))

			started := time.Now()
			res := tx.Exec(step.SQL)
			if res.Error != nil {
				return r.fail(plan.Name, step.Name, res.Error)
			}
			result := StepResult{Name: step.Name, RowsAffected: res.RowsAffected, Duration: time.Since(started)}
			report.Steps = append(report.Steps, result)
			if !plan.Atomic {
				r.completed(plan.Name, result)
			}
			log.WithFields(logrus.Fields{
				"step":     step.Name,
				"rows":     result.RowsAffected,
				"duration": result.Duration,
			}).Debug("step applied")
		}
		return nil
	}

	var err error
	if plan.Atomic {
		err = r.db.WithContext(ctx).Transaction(apply)
		report.RolledBack = err != nil
		for _, result := range report.Steps {
			if report.RolledBack {
				r.rolledBack(plan.Name, result)
			} else {
				r.completed(plan.Name, result)
			}
		}
	} else {
		err = apply(r.db.WithContext(ctx))
	}
	report.Duration = time.Since(report.StartedAt)
	return report, err
}

func (r *Runner) completed(plan string, result StepResult) {
	for _, o := range r.observers {
		o.StepCompleted(plan, result)
	}
}

func (r *Runner) rolledBack(plan string, result StepResult) {
	for _, o := range r.observers {
		o.StepRolledBack(plan, result)
	}
}

func (r *Runner) fail(plan, step string, err error) error {
	for _, o := range r.observers {
		o.StepFailed(plan, step, err)
	}
	return &StepError{Plan: plan, Step: step, Err: err}
}
