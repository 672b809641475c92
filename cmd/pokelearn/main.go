package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pokelearn/internal/cli"
	"pokelearn/internal/config"
	"pokelearn/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	load := func(ctx context.Context) (*cli.App, error) {
		return cli.Bootstrap(ctx, cfg, log), nil
	}

	code := cli.Execute(ctx, load, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if code != 0 {
		log.Sync()
		stop()
		os.Exit(code)
	}
}
