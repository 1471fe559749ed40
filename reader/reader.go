// File: reader/reader.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reader

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/control"
	"github.com/momentics/hioload-fifo/fifo"
	"github.com/momentics/hioload-fifo/internal/framing"
	"github.com/momentics/hioload-fifo/reactor"
)

// Metric keys recorded when WithMetrics is set.
const (
	MetricItems          = "reader.items"
	MetricBytes          = "reader.bytes"
	MetricWakeups        = "reader.wakeups"
	MetricPollTimeouts   = "reader.poll_timeouts"
	MetricReopens        = "reader.reopens"
	MetricReopenFailures = "reader.reopen_failures"
	MetricReadRetries    = "reader.read_retries"
)

// Reader reads items from one FIFO path. All methods are safe for concurrent
// use; a Sequence it returns is not.
type Reader struct {
	cfg Config

	log        logrus.FieldLogger
	metrics    *control.MetricsRegistry
	probes     *control.DebugProbes
	newReactor func() (api.Reactor, error)

	stop   atomic.Bool
	stopCh chan struct{}
	active atomic.Bool
	state  atomic.Int32
}

// New validates cfg, creates the FIFO when cfg.CreateIfMissing is set, and
// returns an idle reader. Nothing is opened until Lines or Chunks is called.
//
// Errors: api.ErrInvalidArgument, api.ErrNotAFifo (path is not a FIFO and
// creation was not requested), api.ErrInvalidMode, api.ErrCreateFailed.
func New(cfg Config, opts ...Option) (*Reader, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r := &Reader{
		cfg:        cfg,
		log:        logrus.StandardLogger(),
		newReactor: reactor.New,
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithField("path", cfg.Path)

	if !fifo.IsFifo(cfg.Path) {
		if !cfg.CreateIfMissing {
			return nil, api.NewError(api.ErrCodeNotAFifo, "path is not a fifo file").
				WithContext("path", cfg.Path)
		}
		if err := fifo.Ensure(cfg.Path, cfg.CreateMode); err != nil {
			return nil, err
		}
		r.log.WithField("mode", cfg.CreateMode).Info("[reader] created fifo")
	}

	r.probes.RegisterProbe("reader.state", func() any { return r.State().String() })
	r.probes.RegisterProbe("reader.path", func() any { return cfg.Path })
	r.probes.RegisterProbe("reader.stop_requested", func() any { return r.StopRequested() })
	return r, nil
}

// Config returns the effective configuration.
func (r *Reader) Config() Config {
	return r.cfg
}

// Path returns the FIFO path.
func (r *Reader) Path() string {
	return r.cfg.Path
}

// State reports the loop state.
func (r *Reader) State() api.ReaderState {
	return api.ReaderState(r.state.Load())
}

func (r *Reader) setState(s api.ReaderState) {
	r.state.Store(int32(s))
}

// RequestStop asks the active sequence to end. It never blocks, may be called
// from any goroutine any number of times, and is permanent: sequences started
// afterwards end immediately. The loop notices within one polling timeout.
func (r *Reader) RequestStop() {
	if r.stop.CompareAndSwap(false, true) {
		close(r.stopCh)
		r.log.Debug("[reader] stop requested")
	}
}

// StopRequested reports whether RequestStop has been called.
func (r *Reader) StopRequested() bool {
	return r.stop.Load()
}

// Lines starts a sequence of newline-delimited lines. With strip set the
// trailing "\n" (and a preceding "\r") is removed; otherwise the newline is
// kept. A final line without newline is delivered when the writer hangs up.
func (r *Reader) Lines(strip bool) (*Sequence, error) {
	return r.start(framing.NewLines(strip, r.cfg.MaxItemSize))
}

// Chunks starts a sequence of size-byte chunks. A shorter final chunk is
// delivered when the writer hangs up.
func (r *Reader) Chunks(size int) (*Sequence, error) {
	if size <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "chunk size must be positive").
			WithContext("size", size)
	}
	return r.start(framing.NewChunks(size))
}

// sleep waits d or until a stop is requested. It reports false on stop.
func (r *Reader) sleep(d time.Duration) bool {
	if r.stop.Load() {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-r.stopCh:
		return false
	case <-t.C:
		return !r.stop.Load()
	}
}
