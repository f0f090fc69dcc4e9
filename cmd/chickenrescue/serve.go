package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue/infrastructure/api"
	"github.com/helixml/chickenrescue/internal/config"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                  Server host to bind to (default: 0.0.0.0)
  PORT                  Server port to listen on (default: 8080)
  LOG_LEVEL             Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT            Log format: pretty, json (default: pretty)
  API_KEYS              Comma-separated keys required on POST /api/v1/*
  CORS_ALLOWED_ORIGINS  Comma-separated allowed origins (default: *)
  REQUEST_TIMEOUT       API request timeout in seconds (default: 60)

  SOLVER_STRATEGY       Coverage strategy: parallel, sweep (default: parallel)
  SOLVER_PARALLELISM    Concurrent window tasks, 0 for GOMAXPROCS (default: 0)

  NODE_BASE_URL         Transaction node URL, empty disables transactions
                        (default: the public mock node)
  NODE_TIMEOUT          Node request timeout in seconds (default: 30)
  NODE_VERIFY_SSL       Verify the node's TLS certificate (default: true)

Endpoints:
  POST /api/v1/rescue               maximum protected chickens
  POST /api/v1/boss                 boss behaviour verdict
  POST /api/v1/transactions         broadcast a transaction
  GET  /api/v1/transactions/{hash}  transaction status
  GET  /healthz                     health check
  GET  /metrics                     Prometheus metrics
  /mcp                              MCP streamable HTTP endpoint`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			cfg := applyServeOverrides(rt.cfg, host, port)

			attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
			rt.logger.LogAttrs(rt.ctx, slog.LevelInfo, "starting chickenrescue", attrs...)

			server := api.NewAPIServer(rt.client,
				api.WithAPIKeys(cfg.APIKeys()),
				api.WithCORSOrigins(cfg.CORSAllowedOrigins()),
				api.WithRequestTimeout(cfg.RequestTimeout()),
				api.WithVersion(version),
			).NewHTTPServer(cfg.Addr())

			ctx, stop := signal.NotifyContext(rt.ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			rt.logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
