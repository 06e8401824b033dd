// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the attendance server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - DatabaseDSN: either a PostgreSQL DSN (pgx) or a SQLite file path.
//   - CORSOrigin: the single frontend origin allowed to call the API.
//   - ShutdownTimeout: how long a graceful shutdown may take.
type Config struct {
	EndpointAddr    string
	DatabaseDSN     string
	CORSOrigin      string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8800"
	c.DatabaseDSN = "data/attendance.sqlite"
	c.CORSOrigin = "http://localhost:5100"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
