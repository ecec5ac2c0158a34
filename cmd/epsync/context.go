package main

import (
	"log/slog"

	"epsync/internal/config"
	"epsync/internal/logging"
)

// commandContext carries lazily-initialized configuration shared by the
// subcommands.
type commandContext struct {
	configFlag *string

	cfg     *config.Config
	cfgPath string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolved
	return cfg, nil
}

// newLogger builds the diagnostic logger for a command invocation. Verbose
// forces debug level regardless of the configured one.
func (c *commandContext) newLogger(verbose bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		adjusted := *cfg
		adjusted.Logging.Level = "debug"
		return logging.NewFromConfig(&adjusted)
	}
	return logging.NewFromConfig(cfg)
}
