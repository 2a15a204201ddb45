package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	if err := c.Stats.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("stats: %w", err))
	}
	if err := c.Snapshot.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("snapshot: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the logging configuration.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("unknown level %q", c.Level)
	}
}

// Validate checks the stats configuration.
// An accuracy of zero means "use the default".
func (c *StatsConfig) Validate() error {
	if c.Accuracy < 0 || c.Accuracy >= 1 {
		return fmt.Errorf("accuracy must be in [0, 1), got %g", c.Accuracy)
	}
	return nil
}

// Validate checks the snapshot configuration.
func (c *SnapshotConfig) Validate() error {
	var errs []error

	if c.Dir == "" {
		errs = append(errs, errors.New("dir is required"))
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
