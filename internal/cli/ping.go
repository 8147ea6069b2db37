package cli

import (
	"context"

	"github.com/wesmun/dbtools/internal/config"
	"github.com/wesmun/dbtools/internal/database"
	"github.com/wesmun/dbtools/internal/logger"
)

// Ping connects, reports the server version and disconnects.
func (a App) Ping(ctx context.Context, args []string) error {
	cmd := Command{Name: "ping-db", FailureLabel: "Connection failed"}

	logger.Init(logger.Options{Out: a.out()})
	cfg, err := config.Load(cmd.Name, args)
	if err != nil {
		reportFailure(cmd, err)
		return err
	}
	logger.Init(logger.Options{Debug: cfg.Debug, Out: a.out(), File: cfg.LogFile})
	log := logger.Log()

	log.Infof("DATABASE_URL: %s", database.MaskDSN(cfg.DatabaseURL))
	log.Info("Testing database connection...")
	db, err := a.connect()(ctx, cfg)
	if err != nil {
		reportFailure(cmd, err)
		return err
	}
	defer func() {
		if cerr := database.Close(db); cerr != nil {
			log.WithError(cerr).Warn("failed to close connection")
		}
	}()

	log.Info("Connection successful!")
	if v, err := database.ServerVersion(ctx, db); err == nil {
		log.Infof("Server: %s", v)
	} else {
		log.WithError(err).Debug("server version unavailable")
	}
	return nil
}
