package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue/infrastructure/transaction"
)

func monitorCmd() *cobra.Command {
	var (
		nodeURL  string
		wait     bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "monitor <tx_hash>",
		Short: "Print the status of a broadcast transaction",
		Long: `Print the status of a broadcast transaction: CONFIRMED, FAILED, PENDING or DNE.

The command exits non-zero unless the transaction is CONFIRMED. With --wait it
polls until the status is final or the command is interrupted.`,
		Example: `  chickenrescue monitor 0xabc
  chickenrescue monitor --wait --interval 2s 0xabc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, nodeOptions(nodeURL)...)
			if err != nil {
				return err
			}
			node, err := rt.client.RequireTransactions()
			if err != nil {
				return err
			}

			status, err := node.Monitor(rt.ctx, args[0])
			for err == nil && wait && status == transaction.StatusPending {
				select {
				case <-rt.ctx.Done():
					return rt.ctx.Err()
				case <-time.After(interval):
				}
				status, err = node.Monitor(rt.ctx, args[0])
			}
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			return status.Err()
		},
	}

	cmd.Flags().StringVar(&nodeURL, "node", "", "Node base URL (default from NODE_BASE_URL)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll while the transaction is PENDING")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Polling interval for --wait")

	return cmd
}
