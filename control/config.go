// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Immutable configuration snapshot. Reader configuration cannot change after
// construction, so the map is copied in once and only ever read.

package control

// ConfigSnapshot is a read-only key/value view of the effective configuration.
type ConfigSnapshot struct {
	config map[string]any
}

// NewConfigSnapshot freezes a copy of cfg.
func NewConfigSnapshot(cfg map[string]any) *ConfigSnapshot {
	cs := &ConfigSnapshot{config: make(map[string]any, len(cfg))}
	for k, v := range cfg {
		cs.config[k] = v
	}
	return cs
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigSnapshot) GetSnapshot() map[string]any {
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}
