// Package config loads runtime configuration for the FlashDeck CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the FLASHDECK_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the authority endpoint
//	-t int      request timeout (seconds)
//	-d string   directory for the local data store
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "data_dir": ".",
//	  "log_level": "info"
//	}
package config
