package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/filex"
)

const (
	appName      = "recipebox"
	databaseFile = "recipebox.db"
)

// Config holds runtime settings for the recipebox CLI.
//
// Fields:
//   - APIBaseURL: origin of the recipe backend, e.g. http://localhost:5000.
//   - DataDir: directory holding the local database with the session.
//   - RequestTimeout: per-request deadline for API calls; 0 disables it.
//   - LogLevel: zap level name for diagnostics on stderr.
//   - WatchSession: follow session changes made by other terminals.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	LogLevel       string
	WatchSession   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.DataDir = filex.DefaultDataDir(appName)
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.WatchSession = true
}

// DatabasePath is the sqlite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, databaseFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file, the environment and command-line flags. Later sources take
// precedence over earlier ones. Invalid input panics.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
