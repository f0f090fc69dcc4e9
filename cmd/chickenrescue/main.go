// Package main is the entry point for the chickenrescue CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/internal/config"
	"github.com/helixml/chickenrescue/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chickenrescue",
		Short: "Roof coverage solver, boss checker and transaction broadcaster",
		Long: `chickenrescue computes how many chickens a single roof can shelter,
judges whether a boss answered every shot, and broadcasts price transactions
to a node.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(solveCmd())
	cmd.AddCommand(bossCmd())
	cmd.AddCommand(broadcastCmd())
	cmd.AddCommand(monitorCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runtime bundles what every command needs.
type runtime struct {
	cfg    config.AppConfig
	logger *slog.Logger
	client *chickenrescue.Client
	ctx    context.Context
}

// setup loads configuration, builds the logger and client, and tags the
// command context with a fresh correlation id.
func setup(cmd *cobra.Command, opts ...chickenrescue.Option) (*runtime, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = log.NewCorrelationID(ctx)
	logger := log.NewLogger(cfg).WithContext(ctx).Slog()

	base := []chickenrescue.Option{
		chickenrescue.WithLogger(logger),
		chickenrescue.WithSolverConfig(cfg.Solver()),
		chickenrescue.WithNodeConfig(cfg.Node()),
	}
	client, err := chickenrescue.New(append(base, opts...)...)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, client: client, ctx: ctx}, nil
}
