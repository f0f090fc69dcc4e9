// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8080
	DefaultLogLevel          = "INFO"
	DefaultSolverStrategy    = "parallel"
	DefaultSolverParallelism = 0 // GOMAXPROCS
	DefaultNodeBaseURL       = "https://mock-node-wgqbnxruha-as.a.run.app"
	DefaultNodeTimeout       = 30 * time.Second
	DefaultRequestTimeout    = 60 * time.Second
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// SolverConfig configures the coverage solver.
type SolverConfig struct {
	strategy    string
	parallelism int
}

// NewSolverConfig creates a new SolverConfig with defaults.
func NewSolverConfig() SolverConfig {
	return SolverConfig{
		strategy:    DefaultSolverStrategy,
		parallelism: DefaultSolverParallelism,
	}
}

// Strategy returns the solver strategy name.
func (s SolverConfig) Strategy() string { return s.strategy }

// Parallelism returns the cap on concurrent window tasks. Zero means GOMAXPROCS.
func (s SolverConfig) Parallelism() int { return s.parallelism }

// WithStrategy returns a new config with the specified strategy.
func (s SolverConfig) WithStrategy(strategy string) SolverConfig {
	s.strategy = strategy
	return s
}

// WithParallelism returns a new config with the specified parallelism.
func (s SolverConfig) WithParallelism(n int) SolverConfig {
	if n < 0 {
		n = 0
	}
	s.parallelism = n
	return s
}

// NodeConfig configures the transaction node connection.
type NodeConfig struct {
	baseURL   string
	timeout   time.Duration
	verifySSL bool
}

// NewNodeConfig creates a new NodeConfig with defaults.
func NewNodeConfig() NodeConfig {
	return NodeConfig{
		baseURL:   DefaultNodeBaseURL,
		timeout:   DefaultNodeTimeout,
		verifySSL: true,
	}
}

// BaseURL returns the node base URL without a trailing slash.
func (n NodeConfig) BaseURL() string { return n.baseURL }

// Timeout returns the request timeout.
func (n NodeConfig) Timeout() time.Duration { return n.timeout }

// VerifySSL returns whether SSL verification is enabled.
func (n NodeConfig) VerifySSL() bool { return n.verifySSL }

// IsConfigured returns true if a node URL is set.
func (n NodeConfig) IsConfigured() bool { return n.baseURL != "" }

// NodeConfigOption is a functional option for NodeConfig.
type NodeConfigOption func(*NodeConfig)

// WithNodeBaseURL sets the node base URL.
func WithNodeBaseURL(url string) NodeConfigOption {
	return func(n *NodeConfig) { n.baseURL = strings.TrimRight(url, "/") }
}

// WithNodeTimeout sets the request timeout.
func WithNodeTimeout(d time.Duration) NodeConfigOption {
	return func(n *NodeConfig) { n.timeout = d }
}

// WithNodeVerifySSL sets SSL verification.
func WithNodeVerifySSL(verify bool) NodeConfigOption {
	return func(n *NodeConfig) { n.verifySSL = verify }
}

// NewNodeConfigWithOptions creates a NodeConfig with options.
func NewNodeConfigWithOptions(opts ...NodeConfigOption) NodeConfig {
	n := NewNodeConfig()
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// With returns a copy of n with opts applied.
func (n NodeConfig) With(opts ...NodeConfigOption) NodeConfig {
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host               string
	port               int
	logLevel           string
	logFormat          LogFormat
	apiKeys            []string
	corsAllowedOrigins []string
	requestTimeout     time.Duration
	solver             SolverConfig
	node               NodeConfig
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:               DefaultHost,
		port:               DefaultPort,
		logLevel:           DefaultLogLevel,
		logFormat:          LogFormatPretty,
		apiKeys:            []string{},
		corsAllowedOrigins: []string{"*"},
		requestTimeout:     DefaultRequestTimeout,
		solver:             NewSolverConfig(),
		node:               NewNodeConfig(),
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the server address (host:port).
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns a copy of the API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// CORSAllowedOrigins returns a copy of the allowed CORS origins.
func (c AppConfig) CORSAllowedOrigins() []string {
	origins := make([]string, len(c.corsAllowedOrigins))
	copy(origins, c.corsAllowedOrigins)
	return origins
}

// RequestTimeout returns the per-request timeout of the HTTP API.
func (c AppConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// Solver returns the solver configuration.
func (c AppConfig) Solver() SolverConfig { return c.solver }

// Node returns the transaction node configuration.
func (c AppConfig) Node() NodeConfig { return c.node }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithCORSAllowedOrigins sets the allowed CORS origins.
func WithCORSAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsAllowedOrigins = make([]string, len(origins))
		copy(c.corsAllowedOrigins, origins)
	}
}

// WithRequestTimeout sets the HTTP API request timeout.
func WithRequestTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// WithSolverConfig sets the solver configuration.
func WithSolverConfig(s SolverConfig) AppConfigOption {
	return func(c *AppConfig) { c.solver = s }
}

// WithNodeConfig sets the node configuration.
func WithNodeConfig(n NodeConfig) AppConfigOption {
	return func(c *AppConfig) { c.node = n }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// API keys are shown as a count.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("log_level", c.logLevel),
		slog.String("log_format", string(c.logFormat)),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.String("solver_strategy", c.solver.Strategy()),
		slog.Int("solver_parallelism", c.solver.Parallelism()),
		slog.String("node_base_url", c.node.BaseURL()),
		slog.Duration("node_timeout", c.node.Timeout()),
	}
}

// ParseList parses a comma-separated string, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
