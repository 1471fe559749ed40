// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract interface for the readiness reactor used by the FIFO
// reader to watch its single pipe descriptor (epoll, poll(2)).

package api

import "time"

// EventMask is a set of readiness conditions on a descriptor.
type EventMask uint32

const (
	// EventRead indicates data is available to read.
	EventRead EventMask = 1 << iota
	// EventPriority indicates priority (out-of-band) data is available.
	EventPriority
	// EventHangup indicates the peer closed its end.
	EventHangup
	// EventError indicates an error condition on the descriptor.
	EventError
)

// EventReadable is the readable/priority subset of a mask.
const EventReadable = EventRead | EventPriority

// EventInterest is the full interest set registered for a FIFO read end.
const EventInterest = EventRead | EventPriority | EventHangup | EventError

// Has reports whether any bit of o is set in m.
func (m EventMask) Has(o EventMask) bool {
	return m&o != 0
}

func (m EventMask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []byte
	add := func(s string) {
		if len(parts) > 0 {
			parts = append(parts, '|')
		}
		parts = append(parts, s...)
	}
	if m.Has(EventRead) {
		add("read")
	}
	if m.Has(EventPriority) {
		add("priority")
	}
	if m.Has(EventHangup) {
		add("hangup")
	}
	if m.Has(EventError) {
		add("error")
	}
	return string(parts)
}

// Event is the result of an OS-level readiness notification.
type Event struct {
	Fd     int       // file descriptor
	Events EventMask // conditions reported
}

// Reactor defines the common interface for a readiness poller regardless of
// the specific polling mechanism used.
type Reactor interface {
	// Register adds fd to the interest set.
	Register(fd int, interest EventMask) error

	// Unregister removes fd from the interest set.
	Unregister(fd int) error

	// Wait blocks up to timeout and fills events. A negative timeout blocks
	// indefinitely. Interrupted waits return zero events and no error.
	Wait(timeout time.Duration, events []Event) (int, error)

	// Close releases the poller backend.
	Close() error
}
