// File: facade/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// File-backed configuration for FiFoFile. Durations are float seconds in
// YAML, matching how operators write them ("polling_timeout: 0.5").

package facade

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/fifo"
	"github.com/momentics/hioload-fifo/internal/framing"
	"github.com/momentics/hioload-fifo/reader"
)

// Config holds parameters immutable per run.
type Config struct {
	Path            string  `yaml:"path"`              // FIFO path
	CreateIfMissing bool    `yaml:"create_if_missing"` // create the FIFO when absent
	CreateMode      string  `yaml:"create_mode"`       // octal mode, e.g. "0o666"
	PollingTimeout  float64 `yaml:"polling_timeout"`   // seconds per poll wait
	ReopenBackoff   float64 `yaml:"reopen_backoff"`    // seconds between reopen attempts
	ReadBufferSize  int     `yaml:"read_buffer_size"`  // bytes per read(2)
	MaxItemSize     int     `yaml:"max_item_size"`     // longest line kept whole
	LogLevel        string  `yaml:"log_level"`         // logrus level name
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		CreateMode:     fifo.DefaultMode,                       // rw for everyone
		PollingTimeout: reader.DefaultPollingTimeout.Seconds(), // 1s stop latency
		ReopenBackoff:  reader.DefaultReopenBackoff.Seconds(),  // 1s between reopen attempts
		ReadBufferSize: reader.DefaultReadBufferSize,           // 64 KiB per read
		MaxItemSize:    framing.DefaultMaxItem,                 // 1 MiB lines
		LogLevel:       logrus.InfoLevel.String(),
	}
}

// LoadConfig reads and parses the YAML config at path.
// Defaults are applied for missing values, then the result is validated.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	invalid := func(key string, value any) error {
		return api.NewError(api.ErrCodeInvalidArgument, "invalid configuration").
			WithContext("key", key).WithContext("value", value)
	}
	if c.Path == "" {
		return invalid("path", c.Path)
	}
	if c.CreateIfMissing {
		if _, err := fifo.ParseMode(c.CreateMode); err != nil {
			return err
		}
	}
	if c.PollingTimeout <= 0 {
		return invalid("polling_timeout", c.PollingTimeout)
	}
	if c.ReopenBackoff <= 0 {
		return invalid("reopen_backoff", c.ReopenBackoff)
	}
	if c.ReadBufferSize <= 0 {
		return invalid("read_buffer_size", c.ReadBufferSize)
	}
	if c.MaxItemSize <= 0 {
		return invalid("max_item_size", c.MaxItemSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return invalid("log_level", c.LogLevel)
	}
	return nil
}

// ReaderConfig converts c into the reader's configuration.
func (c *Config) ReaderConfig() reader.Config {
	return reader.Config{
		Path:            c.Path,
		CreateIfMissing: c.CreateIfMissing,
		CreateMode:      c.CreateMode,
		PollingTimeout:  seconds(c.PollingTimeout),
		ReopenBackoff:   seconds(c.ReopenBackoff),
		ReadBufferSize:  c.ReadBufferSize,
		MaxItemSize:     c.MaxItemSize,
	}
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
