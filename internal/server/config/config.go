// Package config handles configuration for the fake backend, including
// defaults, environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the fake member backend.
//
// Fields:
//   - Addr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of issued bearer tokens.
//   - SeedUserID / SeedPassword / SeedFullName: the root member every
//     registration chain starts from.
//   - SeedDeposit: deposit balance credited to every new member.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	Addr                        string        `env:"ADDR"`
	SecretKey                   string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_TTL"`
	SeedUserID                  string        `env:"SEED_USER_ID"`
	SeedPassword                string        `env:"SEED_PASSWORD"`
	SeedFullName                string        `env:"SEED_FULL_NAME"`
	SeedDeposit                 float64       `env:"SEED_DEPOSIT"`
	LogLevel                    string        `env:"LOG_LEVEL"`
	LogFormat                   string        `env:"LOG_FORMAT"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MEMBER_SERVER_"

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.SeedUserID = "TRT1000"
	c.SeedPassword = "password"
	c.SeedFullName = "ROOT"
	c.SeedDeposit = 500
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
