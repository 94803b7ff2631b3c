package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/caresync-api/internal/app"
	"github.com/jwalitptl/caresync-api/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := app.NewLogger(cfg.Log, os.Stdout)
	log.Logger = logger.ZL

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal(err, "failed to initialize application")
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		logger.Error(err, "server stopped")
		a.Close()
		os.Exit(1)
	}
}
