package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL         = "RECIPEBOX_API_URL"
	envDataDir        = "RECIPEBOX_DATA_DIR"
	envRequestTimeout = "RECIPEBOX_REQUEST_TIMEOUT"
	envLogLevel       = "RECIPEBOX_LOG_LEVEL"
	envWatchSession   = "RECIPEBOX_WATCH_SESSION"
)

// dotenvFile is loaded into the process environment when present. Variables
// already set are not overridden.
var dotenvFile = ".env"

// parseEnv overlays cfg with RECIPEBOX_* variables. Malformed values panic.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envWatchSession); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.WatchSession = b
	}
}
