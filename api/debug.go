// Package api
// Author: momentics
//
// Live introspection of reader state for diagnostics.

package api

// Debug exposes runtime introspection probes.
type Debug interface {
	// DumpState evaluates every probe and returns the results by name.
	DumpState() map[string]any

	// RegisterProbe registers or replaces a named probe.
	RegisterProbe(name string, fn func() any)
}
