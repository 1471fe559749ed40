// File: reader/sequence.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reader

import (
	"errors"
	"iter"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/internal/framing"
)

// errStopped ends a sequence normally.
var errStopped = errors.New("reader: stop requested")

// Sequence is a lazy, finite stream of items, iterated like sql.Rows:
//
//	for seq.Next() {
//	    use(seq.Text())
//	}
//	err := seq.Err()
//
// It ends after a stop request (Err is nil) or a read/poll failure (Err is
// set). Close releases the FIFO early. A Sequence must be driven by a single
// goroutine.
type Sequence struct {
	r      *Reader
	framer *framing.Framer
	re     api.Reactor
	pipe   *pipeHandle
	events []api.Event
	buf    []byte
	fresh  int // bytes read since the handle was opened

	item     string
	err      error
	done     bool
	released bool
}

func (r *Reader) start(f *framing.Framer) (*Sequence, error) {
	if r.stop.Load() {
		return &Sequence{r: r, done: true, released: true}, nil
	}
	if !r.active.CompareAndSwap(false, true) {
		return nil, api.NewError(api.ErrCodeBusy, "reader already has an active sequence").
			WithContext("path", r.cfg.Path)
	}

	s := &Sequence{
		r:      r,
		framer: f,
		events: make([]api.Event, 4),
		buf:    make([]byte, r.cfg.ReadBufferSize),
	}
	r.setState(api.ReaderOpening)
	re, err := r.newReactor()
	if err != nil {
		r.setState(api.ReaderIdle)
		r.active.Store(false)
		return nil, api.NewError(api.ErrCodePollFailed, "failed to create poller").Wrap(err)
	}
	s.re = re
	if err := s.attach(); err != nil {
		_ = s.release()
		return nil, err
	}
	r.setState(api.ReaderPolling)
	return s, nil
}

// Next advances to the next item, blocking until one is available or the
// sequence ends.
func (s *Sequence) Next() bool {
	if s.done {
		return false
	}
	for {
		if s.r.stop.Load() {
			// items still buffered are dropped once a stop is observed
			s.finish(nil)
			return false
		}
		if item, ok := s.framer.Pop(); ok {
			s.item = item
			s.r.metrics.Add(MetricItems, 1)
			return true
		}
		if err := s.poll(); err != nil {
			if err == errStopped {
				err = nil
			}
			s.finish(err)
			return false
		}
	}
}

// Text returns the item produced by the last successful Next.
func (s *Sequence) Text() string {
	return s.item
}

// Err returns the failure that ended the sequence, nil after a stop.
func (s *Sequence) Err() error {
	return s.err
}

// Close ends the sequence and releases the FIFO. It is idempotent.
func (s *Sequence) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	s.item = ""
	return s.release()
}

// All adapts the sequence to a range-over-func iterator. Breaking out of the
// loop closes the sequence; check Err afterwards.
func (s *Sequence) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		defer s.Close()
		for s.Next() {
			if !yield(s.Text()) {
				return
			}
		}
	}
}

// poll performs one wait and handles its events.
func (s *Sequence) poll() error {
	n, err := s.re.Wait(s.r.cfg.PollingTimeout, s.events)
	s.r.metrics.Add(MetricWakeups, 1)
	if err != nil {
		return api.NewError(api.ErrCodePollFailed, "poll wait failed").
			Wrap(err).WithContext("path", s.r.cfg.Path)
	}
	if n == 0 {
		s.r.metrics.Add(MetricPollTimeouts, 1)
		return nil
	}
	for _, ev := range s.events[:n] {
		if s.pipe == nil || ev.Fd != s.pipe.fd {
			continue
		}
		// level-triggered: drain input before acting on a hangup reported
		// in the same event, the next wait reports the hangup again
		switch {
		case ev.Events.Has(api.EventReadable):
			if s.r.stop.Load() {
				return errStopped
			}
			n, eof, err := s.read()
			if err != nil {
				return err
			}
			if eof || (n == 0 && ev.Events.Has(api.EventHangup)) {
				return s.reopen()
			}
		case ev.Events.Has(api.EventHangup | api.EventError):
			return s.reopen()
		}
	}
	return nil
}

// read performs a single non-blocking read. eof reports that the writer
// side is gone.
func (s *Sequence) read() (n int, eof bool, err error) {
	n, err = s.pipe.read(s.buf)
	switch {
	case err == nil && n > 0:
		s.fresh += n
		s.r.metrics.Add(MetricBytes, int64(n))
		s.framer.Feed(s.buf[:n])
		return n, false, nil
	case err == nil:
		return 0, true, nil
	case retryable(err):
		s.r.metrics.Add(MetricReadRetries, 1)
		s.r.log.WithError(err).WithField("fd", s.pipe.fd).Debug("[reader] nothing to read")
		return 0, false, nil
	default:
		return 0, false, api.NewError(api.ErrCodeReadFailed, "failed to read fifo").
			Wrap(err).WithContext("path", s.r.cfg.Path)
	}
}

// reopen replaces the hung-up handle, retrying every ReopenBackoff until it
// succeeds or a stop is requested.
func (s *Sequence) reopen() error {
	r := s.r
	r.setState(api.ReaderReopening)
	idle := s.fresh == 0
	s.detach()
	s.framer.Flush()
	r.metrics.Add(MetricReopens, 1)
	r.log.WithField("state", r.State().String()).Debug("[reader] writer hung up, reopening fifo")

	// a hangup with no data in between would otherwise spin where the
	// platform reports HUP on a FIFO that has no writer
	if idle && !r.sleep(r.cfg.ReopenBackoff) {
		return s.stoppedWithPending()
	}
	for attempt := 1; ; attempt++ {
		if r.stop.Load() {
			return s.stoppedWithPending()
		}
		err := s.attach()
		if err == nil {
			r.setState(api.ReaderPolling)
			return nil
		}
		r.metrics.Add(MetricReopenFailures, 1)
		r.log.WithError(err).WithField("attempt", attempt).Warn("[reader] failed to reopen fifo")
		if !r.sleep(r.cfg.ReopenBackoff) {
			return s.stoppedWithPending()
		}
	}
}

func (s *Sequence) stoppedWithPending() error {
	if n := s.framer.Pending(); n > 0 {
		s.r.log.WithField("dropped", n).Debug("[reader] stop requested during reopen")
	}
	return errStopped
}

// attach opens the FIFO and registers it with the reactor.
func (s *Sequence) attach() error {
	p, err := openPipe(s.r.cfg.Path)
	if err != nil {
		return err
	}
	if err := s.re.Register(p.fd, api.EventInterest); err != nil {
		_ = p.close()
		return api.NewError(api.ErrCodePollFailed, "failed to register fifo").
			Wrap(err).WithContext("path", s.r.cfg.Path)
	}
	s.pipe = p
	s.fresh = 0
	s.r.log.WithField("fd", p.fd).Debug("[reader] fifo opened")
	return nil
}

// detach unregisters and closes the current handle.
func (s *Sequence) detach() error {
	if s.pipe == nil {
		return nil
	}
	var errs []error
	if err := s.re.Unregister(s.pipe.fd); err != nil {
		errs = append(errs, err)
	}
	if err := s.pipe.close(); err != nil {
		errs = append(errs, err)
	}
	s.pipe = nil
	if err := errors.Join(errs...); err != nil {
		s.r.log.WithError(err).Debug("[reader] fifo release")
		return err
	}
	return nil
}

func (s *Sequence) finish(err error) {
	s.done = true
	s.err = err
	s.item = ""
	if err != nil {
		s.r.log.WithError(err).Error("[reader] sequence failed")
	}
	_ = s.release()
}

// release runs on every exit path: handle closed, reactor closed, reader
// free for the next sequence. The reader is Closed only once a stop was
// requested; otherwise it is Idle and may start another sequence.
func (s *Sequence) release() error {
	if s.released {
		return nil
	}
	s.released = true
	err := s.detach()
	if s.re != nil {
		err = errors.Join(err, s.re.Close())
	}
	if s.r.stop.Load() {
		s.r.setState(api.ReaderClosed)
	} else {
		s.r.setState(api.ReaderIdle)
	}
	s.r.active.Store(false)
	return err
}
