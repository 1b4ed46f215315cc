package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTransform(); err != nil {
		return err
	}
	if err := c.validatePreview(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTransform() error {
	switch c.Transform.Mode {
	case "strict", "lenient":
		return nil
	default:
		return fmt.Errorf("transform.mode must be strict or lenient, got %q", c.Transform.Mode)
	}
}

func (c *Config) validatePreview() error {
	if c.Preview.Limit <= 0 {
		return errors.New("preview.limit must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
