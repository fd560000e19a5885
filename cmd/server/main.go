package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamermatch/gamermatch-backend/internal/config"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/container"
	"github.com/gamermatch/gamermatch-backend/internal/infrastructure/database"
)

func main() {
	boot := zerolog.New(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	c, err := container.NewContainer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer c.Close()

	if err := database.RunMigrations(c.DB, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	c.Scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting server")
		errCh <- c.Server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	jobsCtx := c.Scheduler.Stop()
	select {
	case <-jobsCtx.Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("background jobs did not finish before shutdown deadline")
	}

	log.Info().Msg("server stopped")
}
