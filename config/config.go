package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"debt-planner/domain"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
	Database  DatabaseConfig  `yaml:"database"`
	Planner   PlannerConfig   `yaml:"planner"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RateLimitConfig allows Capacity requests per client per Window.
type RateLimitConfig struct {
	Capacity int           `yaml:"capacity"`
	Window   time.Duration `yaml:"window"`
}

// RedisConfig enables the shared plan cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// DatabaseConfig enables Postgres storage when URL is set.
type DatabaseConfig struct {
	URL         string `yaml:"url"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type PlannerConfig struct {
	MaxMonths     int                  `yaml:"max_months"`
	Epsilon       float64              `yaml:"epsilon"`
	MaxDebts      int                  `yaml:"max_debts"`
	HybridWeights domain.HybridWeights `yaml:"hybrid_weights"`
	DTIThresholds domain.DTIThresholds `yaml:"dti_thresholds"`
}

type AdvisorConfig struct {
	Provider string        `yaml:"provider"` // "", "openai" or "gemini"
	APIKey   string        `yaml:"api_key"`
	APIURL   string        `yaml:"api_url"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ValidProviders lists the supported advisor backends. Empty disables it.
var ValidProviders = []string{"", "openai", "gemini"}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Capacity: 30,
			Window:   time.Minute,
		},
		Redis: RedisConfig{
			CacheTTL: time.Hour,
		},
		Database: DatabaseConfig{
			AutoMigrate: true,
		},
		Planner: PlannerConfig{
			MaxMonths:     1200,
			Epsilon:       0.01,
			MaxDebts:      50,
			HybridWeights: domain.DefaultHybridWeights,
			DTIThresholds: domain.DefaultDTIThresholds,
		},
		Advisor: AdvisorConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads defaults, then the YAML file at path (if it exists), then
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DEBT_PLANNER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	// Provider-specific keys pick the provider; ADVISOR_API_KEY only sets the key.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Advisor.APIKey = key
		c.Advisor.Provider = "openai"
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Advisor.APIKey = key
		c.Advisor.Provider = "gemini"
	}
	if key := os.Getenv("ADVISOR_API_KEY"); key != "" {
		c.Advisor.APIKey = key
	}
	if v := os.Getenv("ADVISOR_PROVIDER"); v != "" {
		c.Advisor.Provider = v
	}

	if err := envFloat("HYBRID_RATE_WEIGHT", &c.Planner.HybridWeights.Rate); err != nil {
		return err
	}
	if err := envFloat("HYBRID_SIZE_WEIGHT", &c.Planner.HybridWeights.Size); err != nil {
		return err
	}
	return nil
}

func envFloat(name string, dst *float64) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	*dst = v
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate_limit.capacity and rate_limit.window must be positive"))
	}
	if c.Planner.MaxMonths <= 0 || c.Planner.MaxMonths > 1200 {
		errs = append(errs, fmt.Errorf("planner.max_months must be between 1 and 1200, got %d", c.Planner.MaxMonths))
	}
	if !(c.Planner.Epsilon > 0) || c.Planner.Epsilon >= 1 {
		errs = append(errs, fmt.Errorf("planner.epsilon must be in (0, 1), got %v", c.Planner.Epsilon))
	}
	if c.Planner.MaxDebts <= 0 {
		errs = append(errs, errors.New("planner.max_debts must be positive"))
	}
	w := c.Planner.HybridWeights
	if w.Rate < 0 || w.Size < 0 || w.Rate+w.Size == 0 {
		errs = append(errs, fmt.Errorf("planner.hybrid_weights must be non-negative and not both zero, got %+v", w))
	}
	d := c.Planner.DTIThresholds
	if !(0 < d.Healthy && d.Healthy <= d.Manageable && d.Manageable <= d.Fair) {
		errs = append(errs, fmt.Errorf("planner.dti_thresholds must be positive and ascending, got %+v", d))
	}
	if !slices.Contains(ValidProviders, c.Advisor.Provider) {
		errs = append(errs, fmt.Errorf("invalid advisor provider: %s (valid: %q)", c.Advisor.Provider, ValidProviders))
	}
	if c.Advisor.Provider != "" && c.Advisor.APIKey == "" {
		errs = append(errs, fmt.Errorf("advisor provider %s requires an API key (set ADVISOR_API_KEY)", c.Advisor.Provider))
	}
	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
