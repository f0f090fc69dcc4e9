// Package chickenrescue solves the roof coverage puzzle and its companion
// tasks: the boss behaviour checker and the transaction broadcaster.
//
// Basic usage:
//
//	client, err := chickenrescue.New()
//	if err != nil {
//		return err
//	}
//	best, err := client.Coverage.Solve(ctx, service.SolveParams{
//		RoofLength: 5,
//		Positions:  []uint32{2, 5, 10, 12, 15},
//	})
package chickenrescue

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/helixml/chickenrescue/application/service"
	"github.com/helixml/chickenrescue/infrastructure/transaction"
)

// ErrNodeNotConfigured is returned when a transaction operation is attempted
// without a node URL.
var ErrNodeNotConfigured = errors.New("transaction node not configured")

// Client is the main entry point for the library.
//
// Access services via struct fields:
//
//	client.Coverage.Solve(ctx, params)
//	client.Boss.Judge("SRSSRRR")
//	client.Transactions.Broadcast(ctx, tx)
type Client struct {
	Coverage *service.Coverage
	Boss     *service.Boss

	// Transactions is nil unless a node URL was configured.
	Transactions *transaction.Client

	logger *slog.Logger
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	strategy, err := service.ParseStrategy(cfg.strategy)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	c := &Client{
		Coverage: service.NewCoverage(
			service.WithStrategy(strategy),
			service.WithParallelism(cfg.parallelism),
			service.WithCoverageLogger(logger.With("component", "coverage")),
		),
		Boss:   service.NewBoss(logger.With("component", "boss")),
		logger: logger,
	}

	if cfg.node.IsConfigured() {
		txLogger := logger.With("component", "transaction")
		if cfg.httpClient != nil {
			c.Transactions = transaction.NewClient(cfg.node.BaseURL(),
				transaction.WithHTTPClient(cfg.httpClient),
				transaction.WithLogger(txLogger),
			)
		} else {
			c.Transactions = transaction.NewClientFromConfig(cfg.node, txLogger)
		}
	}

	return c, nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// RequireTransactions returns the transaction client or ErrNodeNotConfigured.
func (c *Client) RequireTransactions() (*transaction.Client, error) {
	if c.Transactions == nil {
		return nil, ErrNodeNotConfigured
	}
	return c.Transactions, nil
}
