package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	v := viper.GetViper()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (GITTAR_*)
	v.SetEnvPrefix("GITTAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.directory", "")
	v.SetDefault("fetch.retries", DefaultRetries)
	v.SetDefault("fetch.timeout", DefaultTimeout)
	v.SetDefault("fetch.progress", DefaultProgress)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// WriteDefault writes the default configuration to the config file path.
// It refuses to overwrite an existing file.
func WriteDefault() (string, error) {
	path := ConfigFilePath()

	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return path, err
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return path, err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return path, err
	}

	return path, nil
}
