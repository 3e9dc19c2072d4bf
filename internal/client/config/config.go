// Package config handles configuration for the kotoba CLI.
package config

import "time"

// Config holds runtime settings for the kotoba CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend TCP endpoint.
//   - DialTimeout: how long to wait for the initial connection.
type Config struct {
	ServerEndpointAddr string
	DialTimeout        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:7878"
	c.DialTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
