package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with SOSENS_* environment variables. When envFile
// exists its entries are loaded first; variables already set in the
// process environment win over the file. A missing file is not an error.
func parseEnv(cfg *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			panic(err)
		}
	}

	if v := os.Getenv("SOSENS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SOSENS_SESSION_DB"); v != "" {
		cfg.SessionDBPath = v
	}
	if v := os.Getenv("SOSENS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SOSENS_TIMEOUT"); v != "" {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v := os.Getenv("SOSENS_ONLINE_CHECK_INTERVAL"); v != "" {
		cfg.OnlineCheckInterval = mustDuration(v)
	}
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
