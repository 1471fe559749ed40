// File: reader/options.go
// Package reader defines functional options for the Reader.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reader

import (
	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/control"
)

// Option customizes reader initialization.
type Option func(*Reader)

// WithLogger routes reader logs to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records loop counters into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(r *Reader) {
		r.metrics = mr
	}
}

// WithDebugProbes registers reader state probes in dp.
func WithDebugProbes(dp *control.DebugProbes) Option {
	return func(r *Reader) {
		r.probes = dp
	}
}

// WithReactorFactory replaces the platform reactor, one per sequence.
func WithReactorFactory(fn func() (api.Reactor, error)) Option {
	return func(r *Reader) {
		if fn != nil {
			r.newReactor = fn
		}
	}
}
