// File: cmd/fifofile/internal/cmd/common.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/maruel/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-fifo/facade"
)

// commonRun carries the flags shared by commands that talk to one FIFO.
type commonRun struct {
	subcommands.CommandRunBase

	configPath      string
	createIfMissing bool
	mode            string
	pollingTimeout  float64
	logLevel        string
}

func (c *commonRun) registerCommonFlags() {
	c.Flags.StringVar(&c.configPath, "config", "", "YAML configuration file.")
	c.Flags.BoolVar(&c.createIfMissing, "create", false, "Create the FIFO if it does not exist.")
	c.Flags.StringVar(&c.mode, "mode", "", "Octal mode for a created FIFO (default 0o666).")
	c.Flags.Float64Var(&c.pollingTimeout, "polling-timeout", 0, "Seconds per poll wait; bounds stop latency.")
	c.Flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error).")
}

// config loads -config when given and applies the flags and the PATH
// argument on top.
func (c *commonRun) config(args []string) (*facade.Config, error) {
	cfg := facade.DefaultConfig()
	if c.configPath != "" {
		loaded, err := facade.LoadConfig(c.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	switch len(args) {
	case 0:
	case 1:
		cfg.Path = args[0]
	default:
		return nil, fmt.Errorf("expected at most one PATH argument, got %d", len(args))
	}
	if c.createIfMissing {
		cfg.CreateIfMissing = true
	}
	if c.mode != "" {
		cfg.CreateMode = c.mode
	}
	if c.pollingTimeout > 0 {
		cfg.PollingTimeout = c.pollingTimeout
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a stderr logger at the configured level.
func newLogger(cfg *facade.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
