//go:build unix && !linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - poll(2) implementation for non-Linux unix systems.

package reactor

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fifo/api"
)

// pollReactor implements api.Reactor on top of poll(2). The interest set is
// rebuilt into a PollFd slice on every change; it holds one entry in practice.
type pollReactor struct {
	mu     sync.Mutex
	closed bool
	fds    []unix.PollFd
}

var _ api.Reactor = (*pollReactor)(nil)

// New creates the platform reactor.
func New() (api.Reactor, error) {
	return &pollReactor{}, nil
}

func (r *pollReactor) Register(fd int, interest api.EventMask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	for _, p := range r.fds {
		if int(p.Fd) == fd {
			return fmt.Errorf("poll register: fd %d: %w", fd, unix.EEXIST)
		}
	}
	r.fds = append(r.fds, unix.PollFd{Fd: int32(fd), Events: maskToPoll(interest)})
	return nil
}

func (r *pollReactor) Unregister(fd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	for i, p := range r.fds {
		if int(p.Fd) == fd {
			r.fds = append(r.fds[:i], r.fds[i+1:]...)
			return nil
		}
	}
	return ErrNotRegistered
}

func (r *pollReactor) Wait(timeout time.Duration, out []api.Event) (int, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return 0, ErrClosed
	}
	fds := make([]unix.PollFd, len(r.fds))
	copy(fds, r.fds)
	r.mu.Unlock()

	if len(fds) == 0 {
		// nothing registered: still honour the timeout
		if timeout > 0 {
			time.Sleep(timeout)
		}
		return 0, nil
	}

	_, err := unix.Poll(fds, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("poll: %w", err)
	}
	n := 0
	for _, p := range fds {
		if p.Revents == 0 || n == len(out) {
			continue
		}
		out[n] = api.Event{Fd: int(p.Fd), Events: pollToMask(p.Revents)}
		n++
	}
	return n, nil
}

func (r *pollReactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.fds = nil
	return nil
}

func maskToPoll(m api.EventMask) int16 {
	var ev int16
	if m.Has(api.EventRead) {
		ev |= unix.POLLIN
	}
	if m.Has(api.EventPriority) {
		ev |= unix.POLLPRI
	}
	// POLLHUP and POLLERR are output-only flags, always reported
	return ev
}

func pollToMask(ev int16) api.EventMask {
	var m api.EventMask
	if ev&unix.POLLIN != 0 {
		m |= api.EventRead
	}
	if ev&unix.POLLPRI != 0 {
		m |= api.EventPriority
	}
	if ev&unix.POLLHUP != 0 {
		m |= api.EventHangup
	}
	if ev&(unix.POLLERR|unix.POLLNVAL) != 0 {
		m |= api.EventError
	}
	return m
}
