package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"footstats-collector/internal/cli"
	"footstats-collector/internal/config"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_COLLECTOR_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCommand(cli.Options{Version: appVersion})
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			fmt.Fprintln(os.Stderr, "error: FOOTBALL_DATA_TOKEN must be set (environment or .env) to run football-data.org jobs")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}
