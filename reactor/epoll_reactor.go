//go:build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - Linux epoll implementation.

package reactor

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fifo/api"
)

// epollReactor implements api.Reactor using level-triggered epoll.
type epollReactor struct {
	mu     sync.Mutex
	epfd   int                   // epoll file descriptor, -1 once closed
	fds    map[int]api.EventMask // registered interest
	events [maxEvents]unix.EpollEvent
}

var _ api.Reactor = (*epollReactor)(nil)

// New creates the platform reactor.
func New() (api.Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollReactor{
		epfd: epfd,
		fds:  make(map[int]api.EventMask),
	}, nil
}

// Register adds a file descriptor to the epoll watch list.
func (r *epollReactor) Register(fd int, interest api.EventMask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.epfd < 0 {
		return ErrClosed
	}
	ev := unix.EpollEvent{
		Events: maskToEpoll(interest),
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	r.fds[fd] = interest
	return nil
}

// Unregister removes a file descriptor from the epoll watch list.
func (r *epollReactor) Unregister(fd int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.epfd < 0 {
		return ErrClosed
	}
	if _, ok := r.fds[fd]; !ok {
		return ErrNotRegistered
	}
	delete(r.fds, fd)
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

// Wait blocks up to timeout for events on registered descriptors.
func (r *epollReactor) Wait(timeout time.Duration, out []api.Event) (int, error) {
	r.mu.Lock()
	epfd := r.epfd
	r.mu.Unlock()
	if epfd < 0 {
		return 0, ErrClosed
	}

	buf := r.events[:]
	if len(out) < len(buf) {
		buf = buf[:len(out)]
	}
	if len(buf) == 0 {
		return 0, nil
	}

	n, err := unix.EpollWait(epfd, buf, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil // interrupted by signal - normal
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		out[i] = api.Event{
			Fd:     int(buf[i].Fd),
			Events: epollToMask(buf[i].Events),
		}
	}
	return n, nil
}

// Close releases the epoll file descriptor.
func (r *epollReactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.epfd < 0 {
		return nil
	}
	err := unix.Close(r.epfd)
	r.epfd = -1
	r.fds = nil
	return err
}

// maskToEpoll converts an interest mask to epoll flags. EPOLLHUP and EPOLLERR
// are always reported by the kernel; they are set anyway for clarity.
func maskToEpoll(m api.EventMask) uint32 {
	var ev uint32
	if m.Has(api.EventRead) {
		ev |= unix.EPOLLIN
	}
	if m.Has(api.EventPriority) {
		ev |= unix.EPOLLPRI
	}
	if m.Has(api.EventHangup) {
		ev |= unix.EPOLLHUP | unix.EPOLLRDHUP
	}
	if m.Has(api.EventError) {
		ev |= unix.EPOLLERR
	}
	return ev
}

// epollToMask converts reported epoll flags to an event mask.
func epollToMask(ev uint32) api.EventMask {
	var m api.EventMask
	if ev&unix.EPOLLIN != 0 {
		m |= api.EventRead
	}
	if ev&unix.EPOLLPRI != 0 {
		m |= api.EventPriority
	}
	if ev&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
		m |= api.EventHangup
	}
	if ev&unix.EPOLLERR != 0 {
		m |= api.EventError
	}
	return m
}
