package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dkolesov/flashdeck/internal/client/cli"
	"github.com/dkolesov/flashdeck/internal/client/config"
	"github.com/dkolesov/flashdeck/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	log := logging.NewConsoleLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
