package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"debt-planner/domain"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"DEBT_PLANNER_ADDR", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "LOG_LEVEL", "LOG_FORMAT",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ADVISOR_API_KEY", "ADVISOR_PROVIDER",
		"HYBRID_RATE_WEIGHT", "HYBRID_SIZE_WEIGHT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "debt-planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  read_timeout: 5s
redis:
  addr: "cache:6379"
  cache_ttl: 10m
planner:
  hybrid_weights:
    rate: 0.7
    size: 0.3
logging:
  level: debug
`), 0644))

	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("HYBRID_SIZE_WEIGHT", "0.25")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, domain.HybridWeights{Rate: 0.7, Size: 0.25}, cfg.Planner.HybridWeights)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidInputs(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server: [not a map"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	t.Setenv("HYBRID_RATE_WEIGHT", "lots")
	_, err = Load("")
	assert.ErrorContains(t, err, "HYBRID_RATE_WEIGHT")
}

func TestEnvOverrides_Advisor(t *testing.T) {
	t.Run("GEMINI_API_KEY selects gemini", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "gemini", cfg.Advisor.Provider)
		assert.Equal(t, "g-key", cfg.Advisor.APIKey)
	})

	t.Run("ADVISOR_PROVIDER wins over key detection", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OPENAI_API_KEY", "o-key")
		t.Setenv("ADVISOR_PROVIDER", "gemini")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "gemini", cfg.Advisor.Provider)
		assert.Equal(t, "o-key", cfg.Advisor.APIKey)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero weights", func(c *Config) { c.Planner.HybridWeights = domain.HybridWeights{} }, "hybrid_weights"},
		{"unsorted thresholds", func(c *Config) { c.Planner.DTIThresholds.Fair = 10 }, "dti_thresholds"},
		{"cap too large", func(c *Config) { c.Planner.MaxMonths = 5000 }, "max_months"},
		{"unknown provider", func(c *Config) { c.Advisor.Provider = "oracle" }, "invalid advisor provider"},
		{"provider without key", func(c *Config) { c.Advisor.Provider = "openai" }, "requires an API key"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":7070"
	cfg.Planner.DTIThresholds = domain.DTIThresholds{Healthy: 25, Manageable: 35, Fair: 45}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip changed config (-saved +loaded):\n%s", diff)
	}
}

func TestLoggingApply(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	require.NoError(t, LoggingConfig{Level: "warn", Format: "json"}.Apply())
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
}
