package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/infrastructure/transaction"
)

func broadcastCmd() *cobra.Command {
	var (
		symbol  string
		price   uint64
		nodeURL string
	)

	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Broadcast a price transaction to the node",
		Long: `Broadcast a price transaction and print the transaction hash.

The node URL comes from --node or NODE_BASE_URL.`,
		Example: `  chickenrescue broadcast --symbol ETH --price 4500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tx, err := transaction.NewTransaction(symbol, price)
			if err != nil {
				return err
			}

			rt, err := setup(cmd, nodeOptions(nodeURL)...)
			if err != nil {
				return err
			}
			node, err := rt.client.RequireTransactions()
			if err != nil {
				return err
			}

			receipt, err := node.Broadcast(rt.ctx, tx)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), receipt.Hash)
			return err
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Three letter ticker, e.g. ETH")
	cmd.Flags().Uint64Var(&price, "price", 0, "Non-zero integer price")
	cmd.Flags().StringVar(&nodeURL, "node", "", "Node base URL (default from NODE_BASE_URL)")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("price")

	return cmd
}

func nodeOptions(nodeURL string) []chickenrescue.Option {
	if nodeURL == "" {
		return nil
	}
	return []chickenrescue.Option{chickenrescue.WithNodeURL(nodeURL)}
}
