package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/TudorHulban/availability"
	"github.com/TudorHulban/availability/internal/api"
	"github.com/TudorHulban/availability/internal/spacefile"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Serve availability calendars for the configured space file and for posted space documents.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(); err != nil {
				return err
			}

			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger.Info().Str("version", Version).Msg("availability starting")

	var space *availability.Space

	if cfg.SpaceFile != "" {
		loaded, errLoad := spacefile.Load(cfg.SpaceFile)
		if errLoad != nil {
			return fmt.Errorf("load space: %w", errLoad)
		}

		space = loaded

		logger.Info().
			Str("file", cfg.SpaceFile).
			Str("time_zone", space.TimeZone).
			Int("minimum_notice", space.MinimumNotice).
			Msg("space loaded")
	}

	engine, errEngine := availability.NewDefaultEngine(&logger)
	if errEngine != nil {
		return fmt.Errorf("initialize engine: %w", errEngine)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, errAPI := api.NewAPI(
		&api.ParamsNewAPI{
			Engine:      engine,
			Space:       space,
			Registry:    registry,
			Logger:      logger,
			DefaultDays: cfg.DefaultDays,
			MaxDays:     cfg.MaxDays,
		},
	)
	if errAPI != nil {
		return fmt.Errorf("initialize api: %w", errAPI)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errServe := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errServe <- err
		}

		close(errServe)
	}()

	if ctx == nil {
		ctx = context.Background()
	}

	ctxSignal, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errServe:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}

		return nil

	case <-ctxSignal.Done():
	}

	logger.Info().Msg("shutting down gracefully...")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(timeoutCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("availability stopped")

	return nil
}
