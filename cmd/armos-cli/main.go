package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nugie07/armos-cleaning/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
