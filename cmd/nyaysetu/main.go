package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nyaysetu/nyaysetu-client/internal/client/cli"
	"github.com/nyaysetu/nyaysetu-client/internal/client/config"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
