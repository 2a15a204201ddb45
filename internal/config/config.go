// Package config defines the tickstore configuration.
//
// Configuration is loaded from a YAML file; missing sections fall back to
// defaults and command line flags may override individual fields.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tickstore/tickstore/internal/stats"
)

// Config is the complete tickstore configuration.
type Config struct {
	// Log configures structured logging output.
	Log LogConfig `yaml:"log"`

	// Stats configures operation latency tracking.
	Stats StatsConfig `yaml:"stats"`

	// Snapshot configures Parquet snapshot export and import.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `yaml:"level"`

	// JSON switches output from human-readable text to JSON.
	JSON bool `yaml:"json"`
}

// StatsConfig configures operation latency tracking.
type StatsConfig struct {
	// Enabled enables latency recording in the shell.
	Enabled bool `yaml:"enabled"`

	// Accuracy is the sketch's relative accuracy (0.01 = 1% error).
	Accuracy float64 `yaml:"accuracy"`
}

// SnapshotConfig configures Parquet snapshot export and import.
type SnapshotConfig struct {
	// Dir is the directory snapshot files are written to.
	Dir string `yaml:"dir"`

	// Concurrency bounds how many types export in parallel.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Stats: StatsConfig{
			Enabled:  true,
			Accuracy: stats.DefaultAccuracy,
		},
		Snapshot: SnapshotConfig{
			Dir:         "snapshots",
			Concurrency: 4,
		},
	}
}

// Load reads and parses the configuration file at path, applying defaults
// for anything the file leaves unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
