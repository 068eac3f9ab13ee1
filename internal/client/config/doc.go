// Package config loads runtime configuration for the SOSENS CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything above.
//
// Environment
//
//	SOSENS_BASE_URL               backend API base address
//	SOSENS_TIMEOUT                per-request timeout ("30s")
//	SOSENS_SESSION_DB             path of the local session database
//	SOSENS_ONLINE_CHECK_INTERVAL  health check interval ("10s")
//	SOSENS_LOG_LEVEL              debug | info | warn | error
//
// Supported flags
//
//	-b string   backend API base address
//	-t int      request timeout (seconds)
//	-s string   session database path
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "base_url": "https://sosens.onrender.com/api/",
//	  "request_timeout": "30s",
//	  "session_db": "sosens.db",
//	  "online_check_interval": "10s",
//	  "log_level": "info"
//	}
package config
