// Command hrslides builds HR PowerPoint decks from JSON or YAML plans.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hrslides/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
