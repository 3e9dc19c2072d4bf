package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading an
// optional .env file from the working directory first. A missing .env file
// is not an error; an unparseable KOTOBA_IDLE_TIMEOUT is ignored rather than
// treated as fatal.
//
// Variables:
//
//	KOTOBA_ADDRESS       bind address, e.g. ":7878"
//	KOTOBA_DATABASE_DSN  PostgreSQL DSN
//	KOTOBA_IDLE_TIMEOUT  per-connection read deadline, e.g. "5m"
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("KOTOBA_ADDRESS"); v != "" {
		config.BindAddr = v
	}
	if v := os.Getenv("KOTOBA_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("KOTOBA_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.IdleTimeout = d
		}
	}
}
