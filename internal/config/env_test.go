package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "", cfg.APIKeys)
	assert.Equal(t, "*", cfg.CORSAllowedOrigins)
	assert.Equal(t, 60.0, cfg.RequestTimeout)
	assert.Equal(t, "parallel", cfg.Solver.Strategy)
	assert.Equal(t, 0, cfg.Solver.Parallelism)
	assert.Equal(t, 30.0, cfg.Node.Timeout)
	assert.True(t, cfg.Node.VerifySSL)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals; keep them in sync with config.go.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultRequestTimeout.Seconds(), cfg.RequestTimeout)
	assert.Equal(t, DefaultSolverStrategy, cfg.Solver.Strategy)
	assert.Equal(t, DefaultSolverParallelism, cfg.Solver.Parallelism)
	assert.Equal(t, DefaultNodeBaseURL, cfg.Node.BaseURL)
	assert.Equal(t, DefaultNodeTimeout.Seconds(), cfg.Node.Timeout)
}

func TestLoadFromEnv_OverrideValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("API_KEYS", "key1,key2,key3")
	t.Setenv("SOLVER_STRATEGY", "SWEEP")
	t.Setenv("SOLVER_PARALLELISM", "4")
	t.Setenv("NODE_BASE_URL", "http://localhost:9999/")
	t.Setenv("NODE_TIMEOUT", "2.5")
	t.Setenv("NODE_VERIFY_SSL", "false")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "key1,key2,key3", env.APIKeys)
	assert.Equal(t, 4, env.Solver.Parallelism)

	cfg := env.ToAppConfig()
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "DEBUG", cfg.LogLevel())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, []string{"key1", "key2", "key3"}, cfg.APIKeys())
	assert.Equal(t, "sweep", cfg.Solver().Strategy())
	assert.Equal(t, 4, cfg.Solver().Parallelism())
	assert.Equal(t, "http://localhost:9999", cfg.Node().BaseURL())
	assert.Equal(t, 2500*time.Millisecond, cfg.Node().Timeout())
	assert.False(t, cfg.Node().VerifySSL())
}

func TestLoadFromEnv_EmptyNodeURLDisablesNode(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("NODE_BASE_URL", "")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	assert.False(t, env.ToAppConfig().Node().IsConfigured())
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("RESCUE_PORT", "7070")

	cfg, err := LoadFromEnvWithPrefix("RESCUE")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadFromEnv_InvalidValue(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "not-a-port")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestParseLogFormat(t *testing.T) {
	assert.Equal(t, LogFormatJSON, parseLogFormat("JSON"))
	assert.Equal(t, LogFormatPretty, parseLogFormat("pretty"))
	assert.Equal(t, LogFormatPretty, parseLogFormat("anything"))
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `LOG_LEVEL=DEBUG
API_KEYS=key1,key2
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnvVars(t)

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "key1,key2", os.Getenv("API_KEYS"))
}

func TestLoadDotEnv_NonExistent(t *testing.T) {
	clearEnvVars(t)

	assert.NoError(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `LOG_LEVEL=WARN
SOLVER_STRATEGY=sweep
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnvVars(t)

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel())
	assert.Equal(t, "sweep", cfg.Solver().Strategy())
}

func TestLoadDotEnvFromFiles(t *testing.T) {
	tmpDir := t.TempDir()

	env1 := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(env1, []byte("KEY1=value1\nKEY2=value2\n"), 0o644))
	env2 := filepath.Join(tmpDir, ".env.local")
	require.NoError(t, os.WriteFile(env2, []byte("KEY2=override\nKEY3=value3\n"), 0o644))

	clearEnvVars(t)

	require.NoError(t, LoadDotEnvFromFiles(env1, filepath.Join(tmpDir, "missing"), env2))
	assert.Equal(t, "value1", os.Getenv("KEY1"))
	assert.Equal(t, "value2", os.Getenv("KEY2")) // first file wins
	assert.Equal(t, "value3", os.Getenv("KEY3"))
}

// clearEnvVars unsets all config-related environment variables and restores
// them when the test ends.
func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"HOST",
		"PORT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"API_KEYS",
		"CORS_ALLOWED_ORIGINS",
		"REQUEST_TIMEOUT",
		"SOLVER_STRATEGY",
		"SOLVER_PARALLELISM",
		"NODE_BASE_URL",
		"NODE_TIMEOUT",
		"NODE_VERIFY_SSL",
		"RESCUE_PORT",
		"KEY1",
		"KEY2",
		"KEY3",
	}

	for _, v := range vars {
		t.Setenv(v, "")
		_ = os.Unsetenv(v)
	}
}
