package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment parsing. Pointer fields distinguish
// "unset" from "set to the zero value" so the overlay only touches variables
// actually present.
type envConfig struct {
	ServerEndpointAddr *string        `env:"ADDRESS"`
	RequestTimeout     *time.Duration `env:"REQUEST_TIMEOUT"`
	DataDir            *string        `env:"DATA_DIR"`
	LogLevel           *string        `env:"LOG_LEVEL"`
}

// parseEnv overlays Config with FLASHDECK_-prefixed environment variables.
// Parse errors panic, matching the other loaders.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "FLASHDECK_"}); err != nil {
		panic(err)
	}

	if ec.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *ec.ServerEndpointAddr
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.DataDir != nil {
		cfg.DataDir = *ec.DataDir
	}
	if ec.LogLevel != nil {
		cfg.LogLevel = *ec.LogLevel
	}
}
