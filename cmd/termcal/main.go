package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	appLog "termcal/internal/log"
)

func main() {
	// Cancel source fetches on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		appLog.Error("termcal failed", err)
		stop()
		os.Exit(1)
	}
}
