// Command gridpath solves shortest-path queries on grid files.
//
//	gridpath solve --grid maze.txt --from 0,0 --to 4,4 --render
//	gridpath solve                 # runs the queries listed in the config
//	gridpath render --grid maze.txt
//	gridpath migrate               # prepares the route cache database
//	gridpath purge --grid maze.txt # drops cached routes of one grid
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const ConfigPath = "config/gridpath.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}
