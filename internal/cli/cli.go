// Package cli is the shared wrapper behind the provisioning commands: it loads
// configuration, connects, runs one plan, verifies the result and always closes
// the connection.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wesmun/dbtools/internal/config"
	"github.com/wesmun/dbtools/internal/database"
	"github.com/wesmun/dbtools/internal/logger"
	"github.com/wesmun/dbtools/internal/metrics"
	"github.com/wesmun/dbtools/internal/migrate"
	"github.com/wesmun/dbtools/internal/notify"
	"github.com/wesmun/dbtools/internal/schema"
	"github.com/wesmun/dbtools/internal/version"
)

// Command describes one provisioning run.
type Command struct {
	Name string
	// Intent is announced once connected.
	Intent string
	Plan   func() (migrate.Plan, error)
	Expect schema.Expectations
	// Success lines are printed in order after the plan committed and verified.
	Success []string
	// Counts maps step names to labels; their affected rows are reported after Success.
	Counts map[string]string
	// FailureLabel precedes the error line, "Error" when empty.
	FailureLabel string
	// Closed is printed after the connection was released.
	Closed string
}

// ConnectFunc opens the database for a run.
type ConnectFunc func(ctx context.Context, cfg config.Config) (*gorm.DB, error)

// App wires the command runtime. The zero value uses PostgreSQL and stdout.
type App struct {
	Connect ConnectFunc
	Out     io.Writer
	Now     func() time.Time
}

func (a App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a App) connect() ConnectFunc {
	if a.Connect != nil {
		return a.Connect
	}
	return database.Connect
}

// Run executes cmd with args as flags. The returned error has already been reported.
func (a App) Run(ctx context.Context, cmd Command, args []string) error {
	logger.Init(logger.Options{Out: a.out()})
	cfg, err := config.Load(cmd.Name, args)
	if err != nil {
		reportFailure(cmd, err)
		return err
	}
	logger.Init(logger.Options{Debug: cfg.Debug, Out: a.out(), File: cfg.LogFile})
	log := logger.Log()
	log.WithFields(logrus.Fields{"version": version.Full(), "dsn": database.MaskDSN(cfg.DatabaseURL)}).
		Debugf("%s starting", cmd.Name)

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder()
	recorder.Register(registry)
	notifier := notify.New(cfg.NotifyURLs)

	plan, err := cmd.Plan()
	if err == nil {
		err = a.execute(ctx, cmd, cfg, plan, recorder)
	} else {
		reportFailure(cmd, err)
	}

	planName := plan.Name
	if planName == "" {
		planName = cmd.Name
	}
	recorder.RunFinished(planName, err, a.now())
	if cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsFile, registry); werr != nil {
			log.WithError(werr).Warn("failed to write metrics file")
		}
	}
	if nerr := notifier.Send(notify.Outcome(cmd.Name, err)); nerr != nil {
		log.WithError(nerr).Warn("failed to send notification")
	}
	return err
}

func (a App) execute(ctx context.Context, cmd Command, cfg config.Config, plan migrate.Plan, observer migrate.Observer) (err error) {
	log := logger.Log()

	log.Info("Connecting to database...")
	db, err := a.connect()(ctx, cfg)
	if err != nil {
		reportFailure(cmd, err)
		return err
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil {
			log.WithError(cerr).Warn("failed to close connection")
			err = errors.Join(err, cerr)
		}
		log.Info(closedMessage(cmd))
	}()

	log.Info(cmd.Intent)
	report, err := migrate.NewRunner(db, migrate.WithObserver(observer)).Run(ctx, plan)
	if err != nil {
		reportFailure(cmd, err)
		return err
	}

	status, err := schema.Verify(ctx, db, cmd.Expect)
	if err == nil && !status.OK() {
		err = fmt.Errorf("schema incomplete after %s: %s", plan.Name, status)
	}
	if err != nil {
		reportFailure(cmd, err)
		return err
	}

	for _, line := range cmd.Success {
		log.Info("✓ " + line)
	}
	for _, step := range report.Steps {
		if label, ok := cmd.Counts[step.Name]; ok {
			log.Infof("✓ %s: %d", label, step.RowsAffected)
		}
	}
	log.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"steps":    len(report.Steps),
		"duration": report.Duration,
	}).Debug("run finished")
	return nil
}

func reportFailure(cmd Command, err error) {
	label := cmd.FailureLabel
	if label == "" {
		label = "Error"
	}
	logger.Log().WithFields(database.ErrorFields(err)).Errorf("✗ %s: %s", label, database.Describe(err))
}

func closedMessage(cmd Command) string {
	if cmd.Closed != "" {
		return cmd.Closed
	}
	return "Connection closed."
}
