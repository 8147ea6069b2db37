// Command setup-db creates the WESMUN schema, seeds the roles and migrates the audit logs.
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

	if err := (cli.App{}).Run(ctx, cli.SetupDB, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
