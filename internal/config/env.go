package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., SOLVER_STRATEGY).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of valid API keys.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ALLOWED_ORIGINS (default: *)
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// RequestTimeout is the HTTP API request timeout in seconds.
	// Env: REQUEST_TIMEOUT (default: 60)
	RequestTimeout float64 `envconfig:"REQUEST_TIMEOUT" default:"60"`

	// Solver configures the coverage solver.
	Solver SolverEnv `envconfig:"SOLVER"`

	// Node configures the transaction node.
	Node NodeEnv `envconfig:"NODE"`
}

// SolverEnv holds environment configuration for the solver.
type SolverEnv struct {
	// Strategy is parallel or sweep.
	// Env: SOLVER_STRATEGY (default: parallel)
	Strategy string `envconfig:"STRATEGY" default:"parallel"`

	// Parallelism caps concurrent window tasks; 0 uses GOMAXPROCS.
	// Env: SOLVER_PARALLELISM (default: 0)
	Parallelism int `envconfig:"PARALLELISM" default:"0"`
}

// NodeEnv holds environment configuration for the transaction node.
type NodeEnv struct {
	// BaseURL is the node base URL.
	// Env: NODE_BASE_URL
	BaseURL string `envconfig:"BASE_URL" default:"https://mock-node-wgqbnxruha-as.a.run.app"`

	// Timeout is the request timeout in seconds.
	// Env: NODE_TIMEOUT (default: 30)
	Timeout float64 `envconfig:"TIMEOUT" default:"30"`

	// VerifySSL controls SSL certificate verification.
	// Env: NODE_VERIFY_SSL (default: true)
	VerifySSL bool `envconfig:"VERIFY_SSL" default:"true"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "RESCUE" would require RESCUE_PORT instead of PORT.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseList(e.APIKeys)))
	}
	if e.CORSAllowedOrigins != "" {
		cfg = applyOption(cfg, WithCORSAllowedOrigins(ParseList(e.CORSAllowedOrigins)))
	}
	cfg = applyOption(cfg, WithRequestTimeout(seconds(e.RequestTimeout)))

	solver := NewSolverConfig().WithParallelism(e.Solver.Parallelism)
	if e.Solver.Strategy != "" {
		solver = solver.WithStrategy(strings.ToLower(e.Solver.Strategy))
	}
	cfg = applyOption(cfg, WithSolverConfig(solver))

	// An empty base URL disables the node.
	nodeOpts := []NodeConfigOption{
		WithNodeBaseURL(e.Node.BaseURL),
		WithNodeVerifySSL(e.Node.VerifySSL),
	}
	if e.Node.Timeout > 0 {
		nodeOpts = append(nodeOpts, WithNodeTimeout(seconds(e.Node.Timeout)))
	}
	cfg = applyOption(cfg, WithNodeConfig(NewNodeConfigWithOptions(nodeOpts...)))

	return cfg
}

func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
