package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"weather-fetcher/console"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		console.New(os.Stderr).Alert("Error: %v", err)
		stop()
		os.Exit(1)
	}
}
