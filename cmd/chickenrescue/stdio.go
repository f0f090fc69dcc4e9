package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue/internal/mcp"
)

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

Tools: max_protected and check_boss, plus broadcast_transaction and
check_transaction unless NODE_BASE_URL is empty. Each tool call is bounded
by REQUEST_TIMEOUT. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}

			rt.logger.Info("starting MCP server",
				slog.String("version", version),
				slog.Bool("transactions", rt.client.Transactions != nil),
			)

			return mcp.NewServerForClient(rt.client, version,
				mcp.WithToolTimeout(rt.cfg.RequestTimeout()),
			).ServeStdio()
		},
	}
}
