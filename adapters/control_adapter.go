// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control interface using control package primitives.

package adapters

import (
	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/control"
)

type ControlAdapter struct {
	config  *control.ConfigSnapshot
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

var _ api.Control = (*ControlAdapter)(nil)

// NewControlAdapter wires a frozen configuration snapshot with fresh metrics
// and debug registries, plus the platform probes.
func NewControlAdapter(cfg map[string]any) *ControlAdapter {
	adapter := &ControlAdapter{
		config:  control.NewConfigSnapshot(cfg),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

// Stats merges metrics with probe output, probes prefixed with "debug.".
func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Metrics exposes the registry the read loop updates.
func (c *ControlAdapter) Metrics() *control.MetricsRegistry {
	return c.metrics
}

// Probes exposes the probe registry for reader state probes.
func (c *ControlAdapter) Probes() *control.DebugProbes {
	return c.debug
}
