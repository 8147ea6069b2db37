// Command ping-db checks that the configured database is reachable.
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

	if err := (cli.App{}).Ping(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
