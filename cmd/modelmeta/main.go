package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/toyz/modelmeta/internal/cli"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Cancel a running build on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewApp(ctx, version).Run(args)
}
