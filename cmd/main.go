package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asynkron/fudiff/internal/cli"
)

// main runs the fudiff command line.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(cli.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
