// File: facade/fifofile.go
// Unified facade for hioload-fifo.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FiFoFile aggregates the reader, the writer side and the control surface
// for one FIFO path behind a single type, built from an immutable Config.

package facade

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-fifo/adapters"
	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/fifo"
	"github.com/momentics/hioload-fifo/reader"
)

// FiFoFile is the main facade type.
// It implements api.GracefulShutdown to allow unified shutdown logic.
type FiFoFile struct {
	config  *Config
	reader  *reader.Reader
	control *adapters.ControlAdapter
	log     logrus.FieldLogger
}

var _ api.GracefulShutdown = (*FiFoFile)(nil)

// New constructs a FiFoFile for cfg. A nil cfg is rejected since there is no
// sensible default path.
func New(cfg *Config, opts ...Option) (*FiFoFile, error) {
	if cfg == nil {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "nil configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	f := &FiFoFile{config: cfg}
	for _, opt := range opts {
		opt(f)
	}
	if f.log == nil {
		logger := logrus.New()
		level, _ := logrus.ParseLevel(cfg.LogLevel)
		logger.SetLevel(level)
		f.log = logger
	}

	rc := cfg.ReaderConfig()
	snapshot := rc.Map()
	snapshot["log_level"] = cfg.LogLevel
	f.control = adapters.NewControlAdapter(snapshot)

	r, err := reader.New(rc,
		reader.WithLogger(f.log),
		reader.WithMetrics(f.control.Metrics()),
		reader.WithDebugProbes(f.control.Probes()),
	)
	if err != nil {
		return nil, err
	}
	f.reader = r
	return f, nil
}

// Path returns the FIFO path.
func (f *FiFoFile) Path() string {
	return f.config.Path
}

// ReadLines starts a line sequence on the FIFO.
func (f *FiFoFile) ReadLines(strip bool) (*reader.Sequence, error) {
	return f.reader.Lines(strip)
}

// Read starts a sequence of size-byte chunks.
func (f *FiFoFile) Read(size int) (*reader.Sequence, error) {
	return f.reader.Chunks(size)
}

// WriteLine writes one line to the FIFO through a fresh write handle.
func (f *FiFoFile) WriteLine(ctx context.Context, text string, flush bool) error {
	return fifo.WriteLine(ctx, f.config.Path, text, flush)
}

// StopReading asks the active sequence to end; safe from any goroutine.
func (f *FiFoFile) StopReading() {
	f.reader.RequestStop()
}

// State reports the reader loop state.
func (f *FiFoFile) State() api.ReaderState {
	return f.reader.State()
}

// Shutdown implements api.GracefulShutdown by delegating to StopReading.
// The active sequence releases the FIFO within one polling timeout.
func (f *FiFoFile) Shutdown() error {
	f.StopReading()
	f.log.Debug("[facade] shutdown requested")
	return nil
}

// GetControl returns the Control interface for config, metrics and probes.
func (f *FiFoFile) GetControl() api.Control {
	return f.control
}

// GetDebugAPI returns the debug probe registry.
func (f *FiFoFile) GetDebugAPI() api.Debug {
	return f.control.Probes()
}

// CreateFifoFile creates a FIFO node; see fifo.CreateNode.
func CreateFifoFile(path, mode string, failIfExists bool) (bool, error) {
	return fifo.CreateNode(path, mode, failIfExists)
}

// IsFifoFile reports whether path is a FIFO.
func IsFifoFile(path string) bool {
	return fifo.IsFifo(path)
}
