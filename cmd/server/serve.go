package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"wcidash/internal/api"
	"wcidash/internal/config"
	"wcidash/internal/engine"
	"wcidash/internal/observability"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.LoggerConfig())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg, "wci")

	// 1. Initialize Handler with an empty cache
	// The API is "live" but returns 503 until the first load completes
	loaderLog := observability.Component(logger, "loader")
	cache := engine.NewCache(func(ctx context.Context) (*engine.Dataset, error) {
		return engine.Load(ctx, cfg.Sources(), loaderLog)
	})
	h := api.NewHandler(cache, cfg.Query, metrics, logger)
	e := api.NewServer(*cfg, h, logger, reg)

	// 2. Launch the load in the background
	go func() {
		if _, err := h.Reload(ctx); err != nil {
			logger.Error().Err(err).Msg("initial load failed; POST /api/reload to retry")
		}
	}()

	// 3. Start the server immediately
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("server ready (data loading in background)")
		if err := e.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// 4. Drain in-flight requests
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// loadOnce runs a single synchronous load for the offline commands.
func loadOnce(ctx context.Context, configPath string) (*config.Config, *engine.Dataset, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	// stdout carries the report
	lc := cfg.LoggerConfig()
	lc.Output = "stderr"
	logger := observability.NewLogger(lc)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	d, err := engine.Load(ctx, cfg.Sources(), observability.Component(logger, "loader"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, d, nil
}
