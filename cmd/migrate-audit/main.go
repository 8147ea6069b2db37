// Command migrate-audit adds user snapshot columns to audit_logs and backfills them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wesmun/dbtools/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := (cli.App{}).Run(ctx, cli.MigrateAudit, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
