package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tagpivot/internal/config"
	"tagpivot/internal/logging"
	"tagpivot/internal/reshape"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) resolvedLogLevel(cfg *config.Config) string {
	if c.verbose() {
		return "debug"
	}
	return cfg.Logging.Level
}

func logFilePath(cfg *config.Config) string {
	return filepath.Join(cfg.Logging.LogDir, "tagpivot.log")
}

// newLogger builds the run logger. Log lines always land in tagpivot.log
// under logging.log_dir; --verbose mirrors them to stderr.
func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{logFilePath(cfg)}
	if c.verbose() {
		outputs = append(outputs, "stderr")
	}
	return logging.New(logging.Options{
		Level:       c.resolvedLogLevel(cfg),
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
		Development: c.verbose(),
	})
}

// resolveMode picks the header-validation mode: an explicit --mode flag wins
// over the configured default.
func (c *commandContext) resolveMode(cfg *config.Config, flagValue string) (reshape.Mode, error) {
	if strings.TrimSpace(flagValue) != "" {
		return reshape.ParseMode(flagValue)
	}
	return reshape.ParseMode(cfg.Transform.Mode)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
