// File: api/control.go
// Package api defines Control interface.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control exposes the immutable configuration snapshot and runtime metrics.
type Control interface {
	GetConfig() map[string]any
	Stats() map[string]any
	SetMetric(key string, value any)
	RegisterDebugProbe(name string, fn func() any)
}
