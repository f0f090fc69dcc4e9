package chickenrescue

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/helixml/chickenrescue/application/service"
	"github.com/helixml/chickenrescue/internal/config"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	logger      *slog.Logger
	strategy    string
	parallelism int
	node        config.NodeConfig
	httpClient  *http.Client
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		strategy:    config.DefaultSolverStrategy,
		parallelism: config.DefaultSolverParallelism,
		node:        config.NewNodeConfigWithOptions(config.WithNodeBaseURL("")),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithLogger sets the logger used by every service.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithStrategy selects the coverage strategy by name: "parallel" or "sweep".
func WithStrategy(s service.Strategy) Option {
	return func(c *clientConfig) {
		c.strategy = string(s)
	}
}

// WithParallelism caps concurrent window tasks. Zero means GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(c *clientConfig) {
		if n >= 0 {
			c.parallelism = n
		}
	}
}

// WithSolverConfig applies solver settings loaded from the environment.
func WithSolverConfig(s config.SolverConfig) Option {
	return func(c *clientConfig) {
		c.strategy = s.Strategy()
		c.parallelism = s.Parallelism()
	}
}

// WithNodeURL enables the transaction client against the node at url.
func WithNodeURL(url string) Option {
	return func(c *clientConfig) {
		c.node = c.node.With(config.WithNodeBaseURL(url))
	}
}

// WithNodeTimeout sets the per-request timeout for node calls.
func WithNodeTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.node = c.node.With(config.WithNodeTimeout(d))
		}
	}
}

// WithNodeConfig replaces all node settings.
func WithNodeConfig(n config.NodeConfig) Option {
	return func(c *clientConfig) {
		c.node = n
	}
}

// WithHTTPClient overrides the HTTP client used for node calls.
func WithHTTPClient(h *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = h
	}
}
