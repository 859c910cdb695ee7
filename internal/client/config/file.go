package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
	"github.com/dmitrijs2005/recipebox/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file unmarshalling. Pointer
// fields distinguish "absent" from zero values.
type FileConfig struct {
	APIBaseURL     *string         `json:"api_base_url" yaml:"api_base_url"`
	DataDir        *string         `json:"data_dir" yaml:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	WatchSession   *bool           `json:"watch_session" yaml:"watch_session"`
}

// parseFile overlays cfg with the file named by -c/-config, if any. Read or
// decode errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != nil {
		cfg.APIBaseURL = *fc.APIBaseURL
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.WatchSession != nil {
		cfg.WatchSession = *fc.WatchSession
	}
}
