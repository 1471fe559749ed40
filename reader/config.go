// File: reader/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reader

import (
	"time"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/fifo"
	"github.com/momentics/hioload-fifo/internal/framing"
)

// Config is the immutable reader configuration.
type Config struct {
	Path            string        // FIFO path
	CreateIfMissing bool          // create the FIFO when Path is not one
	CreateMode      string        // octal permission for a created FIFO
	PollingTimeout  time.Duration // longest single poll wait
	ReopenBackoff   time.Duration // pause between failed reopen attempts
	ReadBufferSize  int           // bytes requested per read(2)
	MaxItemSize     int           // longest line kept whole, in bytes
}

const (
	DefaultPollingTimeout = time.Second
	DefaultReopenBackoff  = time.Second
	DefaultReadBufferSize = 64 * 1024
)

// DefaultConfig returns default configuration values for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		CreateMode:     fifo.DefaultMode,
		PollingTimeout: DefaultPollingTimeout,
		ReopenBackoff:  DefaultReopenBackoff,
		ReadBufferSize: DefaultReadBufferSize,
		MaxItemSize:    framing.DefaultMaxItem,
	}
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	if c.CreateMode == "" {
		c.CreateMode = fifo.DefaultMode
	}
	if c.PollingTimeout == 0 {
		c.PollingTimeout = DefaultPollingTimeout
	}
	if c.ReopenBackoff == 0 {
		c.ReopenBackoff = DefaultReopenBackoff
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = DefaultReadBufferSize
	}
	if c.MaxItemSize == 0 {
		c.MaxItemSize = framing.DefaultMaxItem
	}
	return c
}

func (c Config) validate() error {
	invalid := func(field string, value any) error {
		return api.NewError(api.ErrCodeInvalidArgument, "invalid reader configuration").
			WithContext("field", field).WithContext("value", value)
	}
	switch {
	case c.Path == "":
		return invalid("path", c.Path)
	case c.PollingTimeout < 0:
		return invalid("polling_timeout", c.PollingTimeout)
	case c.ReopenBackoff < 0:
		return invalid("reopen_backoff", c.ReopenBackoff)
	case c.ReadBufferSize < 0:
		return invalid("read_buffer_size", c.ReadBufferSize)
	case c.MaxItemSize < 0:
		return invalid("max_item_size", c.MaxItemSize)
	}
	return nil
}

// Map renders the configuration for control snapshots.
func (c Config) Map() map[string]any {
	return map[string]any{
		"path":              c.Path,
		"create_if_missing": c.CreateIfMissing,
		"create_mode":       c.CreateMode,
		"polling_timeout":   c.PollingTimeout.String(),
		"reopen_backoff":    c.ReopenBackoff.String(),
		"read_buffer_size":  c.ReadBufferSize,
		"max_item_size":     c.MaxItemSize,
	}
}
