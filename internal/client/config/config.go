// Package config handles configuration for the blogbox CLI: defaults,
// optional JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend, e.g. "http://localhost:5000".
//   - StateDBPath: path of the local SQLite state database.
//   - RequestTimeout: per-request HTTP timeout.
//   - AuthorQuietPeriod: debounce interval for the author filter field.
type Config struct {
	ServerBaseURL     string
	StateDBPath       string
	RequestTimeout    time.Duration
	AuthorQuietPeriod time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.StateDBPath = "blogbox.db"
	c.RequestTimeout = 10 * time.Second
	c.AuthorQuietPeriod = 1 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
