package main

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml.
type Config struct {
	Ceiling  int    `yaml:"ceiling"`  // queue phase: max tasks in flight (4 by default)
	Workers  int    `yaml:"workers"`  // pool phase: worker count (2 by default)
	Scenario string `yaml:"scenario"` // scenario file path ("scenario.json" by default)
}

// If the config file is not found, we use default values.
func defaultConfig() Config {
	return Config{
		Ceiling:  4,
		Workers:  2,
		Scenario: "scenario.json",
	}
}

// loadConfig reads YAML and overrides defaults; empty path = defaults only.
func loadConfig(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.Ceiling < 1 {
		cfg.Ceiling = 4
	}
	if cfg.Workers < 1 {
		cfg.Workers = 2
	}
	if cfg.Scenario == "" {
		cfg.Scenario = "scenario.json"
	}

	return cfg
}
