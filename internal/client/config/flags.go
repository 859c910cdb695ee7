package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the recipe API
//	-d string   data directory
//	-t int      request timeout in seconds
//	-l string   log level
//	-w bool     watch session changes
//
// Note: The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-l", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the recipe API")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the local database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds, 0 disables)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.WatchSession, "w", cfg.WatchSession, "watch the session for changes from other terminals")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
