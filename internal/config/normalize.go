package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTransform()
	c.normalizePreview()
	return c.normalizeLogging()
}

func (c *Config) normalizeTransform() {
	c.Transform.Mode = strings.ToLower(strings.TrimSpace(c.Transform.Mode))
	if c.Transform.Mode == "" {
		c.Transform.Mode = defaultTransformMode
	}
}

func (c *Config) normalizePreview() {
	if c.Preview.Limit == 0 {
		c.Preview.Limit = defaultPreviewLimit
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.LogDir) == "" {
		c.Logging.LogDir = defaultLogDir
	}
	var err error
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}
