package config

import (
	"time"
)

// Config represents the application configuration
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Fetch   FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	// Directory overrides the per-repository default cache location.
	// Empty means {cache home}/hulla/gittar/{owner}/{repo}.
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// FetchConfig contains download settings
type FetchConfig struct {
	Retries  int           `mapstructure:"retries" yaml:"retries"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Progress bool          `mapstructure:"progress" yaml:"progress"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Fetch.Retries < 0 {
		c.Fetch.Retries = 0
	}
	if c.Fetch.Timeout < 0 {
		c.Fetch.Timeout = 0
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
