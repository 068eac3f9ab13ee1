package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the SOSENS CLI.
type Config struct {
	// BaseURL is the backend API prefix every endpoint is joined beneath.
	BaseURL string
	// RequestTimeout bounds each backend call. The hosted backend cold
	// starts, so the default is generous.
	RequestTimeout time.Duration
	// SessionDBPath is the SQLite file holding the cached session.
	SessionDBPath string
	// OnlineCheckInterval is how often the CLI checks the health endpoint.
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with defaults pointing at the hosted backend.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://sosens.onrender.com/api/"
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = "sosens.db"
	c.OnlineCheckInterval = 10 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, environment, JSON file and flags,
// later sources taking precedence. It panics on malformed input.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
