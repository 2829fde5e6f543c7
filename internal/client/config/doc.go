// Package config loads runtime configuration for the member CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-env path, or ./.env when present) and MEMBER_*
//     environment variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-d string   path of the on-device SQLite database
//	-l string   log level (debug, info, warn, error)
//	-m string   address for the /metrics endpoint, empty to disable
//
// # JSON schema
//
// The JSON loader uses timex.Duration, so the timeout can be either a
// string like "10s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://trttierion-member-be.onrender.com/api",
//	  "request_timeout": "10s",
//	  "database_path": "member.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "metrics_addr": ""
//	}
//
// # Environment
//
//	MEMBER_BASE_URL, MEMBER_REQUEST_TIMEOUT, MEMBER_DATABASE_PATH,
//	MEMBER_LOG_LEVEL, MEMBER_LOG_FORMAT, MEMBER_METRICS_ADDR
package config
