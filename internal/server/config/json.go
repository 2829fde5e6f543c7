package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/memberclient/internal/flagx"
	"github.com/dmitrijs2005/memberclient/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "90m" as well as integer nanoseconds.
type JsonConfig struct {
	Addr                        string         `json:"addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	SeedUserID                  string         `json:"seed_user_id"`
	SeedPassword                string         `json:"seed_password"`
	SeedFullName                string         `json:"seed_full_name"`
	SeedDeposit                 *float64       `json:"seed_deposit"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// field it sets into config. Panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Addr, c.Addr)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.SeedUserID, c.SeedUserID)
	setString(&config.SeedPassword, c.SeedPassword)
	setString(&config.SeedFullName, c.SeedFullName)
	if c.SeedDeposit != nil {
		config.SeedDeposit = *c.SeedDeposit
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
