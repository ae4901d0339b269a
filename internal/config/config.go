// Package config loads the YAML application configuration. Every field
// has a usable default so the binary runs without a config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port        int `yaml:"port"`
	MetricsPort int `yaml:"metrics_port"`
}

type AuthConfig struct {
	Secret   string `yaml:"secret"`
	SeedFile string `yaml:"seed_file"`
}

type KitchenConfig struct {
	MaxPreparing int `yaml:"max_preparing"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Auth    AuthConfig    `yaml:"auth"`
	Kitchen KitchenConfig `yaml:"kitchen"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: 3001, MetricsPort: 9090},
		Auth:    AuthConfig{Secret: "canteen-dev-secret", SeedFile: "data/users.json"},
		Kitchen: KitchenConfig{MaxPreparing: 5},
		Log:     LogConfig{Level: "info", MaxSizeMB: 100},
	}
}

// Load reads path over the defaults. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
