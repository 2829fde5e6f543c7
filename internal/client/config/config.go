package config

import "time"

// DefaultBaseURL is the production member API.
const DefaultBaseURL = "https://trttierion-member-be.onrender.com/api"

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MEMBER_"

// Config holds runtime settings for the member CLI.
type Config struct {
	BaseURL        string        `env:"BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	LogLevel       string        `env:"LOG_LEVEL"`
	LogFormat      string        `env:"LOG_FORMAT"`
	// MetricsAddr, when set, serves Prometheus metrics on /metrics.
	MetricsAddr string `env:"METRICS_ADDR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "member.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.MetricsAddr = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
