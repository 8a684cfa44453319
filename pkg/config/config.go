// Package config loads tool-level configuration for nuspecgen. Task files
// carry the per-package inputs; this covers the knobs that apply to every
// invocation on a machine or in a repo.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for nuspecgen
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
}

// GenerateConfig holds generation options
type GenerateConfig struct {
	// Workers bounds concurrent task files in batch mode.
	Workers int `mapstructure:"workers"`
	// RepositoryFromGit stamps repository metadata from the local git repo
	// unless a task overrides it.
	RepositoryFromGit bool `mapstructure:"repository_from_git"`
}

var defaultConfig = Config{
	Generate: GenerateConfig{
		Workers:           4,
		RepositoryFromGit: false,
	},
}

// LoadConfig loads configuration from file, environment, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("generate.workers", defaultConfig.Generate.Workers)
	v.SetDefault("generate.repository_from_git", defaultConfig.Generate.RepositoryFromGit)

	v.SetConfigName(".nuspecgen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("NUSPECGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent.
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}
	if config.Generate.Workers < 1 {
		config.Generate.Workers = 1
	}

	return &config, nil
}
