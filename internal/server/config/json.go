package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkurose/kotoba/internal/flagx"
	"github.com/dkurose/kotoba/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling its fields are copied into the
// runtime Config, which uses time.Duration.
type JsonConfig struct {
	BindAddr    string         `json:"bind_addr"`
	DatabaseDSN string         `json:"database_dsn"`
	IdleTimeout timex.Duration `json:"idle_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; if neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics: a requested-but-broken config file
// should stop startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.BindAddr = c.BindAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.IdleTimeout = time.Duration(c.IdleTimeout.Duration)
}
