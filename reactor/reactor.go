// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral helpers shared by the reactor backends.

package reactor

import (
	"errors"
	"time"
)

// ErrClosed is returned by operations on a closed reactor.
var ErrClosed = errors.New("reactor: closed")

// ErrNotRegistered is returned when unregistering an unknown descriptor.
var ErrNotRegistered = errors.New("reactor: fd not registered")

// maxEvents bounds one wait; the FIFO reader only ever registers one fd.
const maxEvents = 8

// timeoutMillis converts a wait timeout to the millisecond argument used by
// epoll_wait and poll. Positive sub-millisecond timeouts round up so the
// call never degrades into a busy spin.
func timeoutMillis(d time.Duration) int {
	if d < 0 {
		return -1
	}
	ms := d / time.Millisecond
	if d%time.Millisecond != 0 {
		ms++
	}
	if ms > 1<<31-1 {
		ms = 1<<31 - 1
	}
	return int(ms)
}
