package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/memberclient/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays MEMBER_SERVER_* variables. A dotenv file named by -env,
// or ./.env when present, is loaded first; variables already set in the
// process environment win over the file. Panics on malformed input.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
