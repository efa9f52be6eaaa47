package config

import "time"

// Config holds runtime settings for the FlashDeck CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the authority endpoint.
//   - RequestTimeout: per-request deadline for authority calls.
//   - DataDir: directory holding the local SQLite store.
//   - LogLevel: console log level (debug, info, warn, error).
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	DataDir            string
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.DataDir = "."
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
