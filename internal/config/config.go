// Package config loads the YAML configuration for the isam CLI, in the
// shape of the teacher project's internal/config.go.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the on-disk YAML shape for the isam command-line harness.
// The storage engine's own tunables (P, L, Alpha, Beta, OVF_NULL) stay
// compile-time constants per spec.md §6; this config only carries what a
// caller reasonably wants to change between runs: where the two files
// live.
type Config struct {
	Storage struct {
		IndexFile string `mapstructure:"index_file"`
		DataFile  string `mapstructure:"data_file"`
	} `mapstructure:"storage"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Storage.IndexFile = "index.bin"
	cfg.Storage.DataFile = "data.bin"
	return cfg
}

// Load reads a YAML config file at path, falling back to Default for any
// field the file leaves unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("storage.index_file", cfg.Storage.IndexFile)
	v.SetDefault("storage.data_file", cfg.Storage.DataFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
