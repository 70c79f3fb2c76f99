package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default values
const (
	DefaultRetries  = 0
	DefaultTimeout  = 0 // no deadline: downloads run to completion or failure
	DefaultProgress = true

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "gittar")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Directory: "",
		},
		Fetch: FetchConfig{
			Retries:  DefaultRetries,
			Timeout:  DefaultTimeout,
			Progress: DefaultProgress,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
