// Package config loads runtime configuration for the recipebox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables, after loading ./.env if it exists.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the recipe API
//	-d string   data directory for the local database
//	-t int      request timeout (seconds, 0 disables)
//	-l string   log level (debug, info, warn, error)
//	-w bool     watch the session for changes from other terminals (-w=false to disable)
//
// Environment
//
//	RECIPEBOX_API_URL, RECIPEBOX_DATA_DIR, RECIPEBOX_REQUEST_TIMEOUT (e.g. "10s"),
//	RECIPEBOX_LOG_LEVEL, RECIPEBOX_WATCH_SESSION (true/false)
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds. Omitted keys keep their earlier value:
//
//	{
//	  "api_base_url": "http://localhost:5000",
//	  "data_dir": "/home/me/.config/recipebox",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "watch_session": true
//	}
package config
