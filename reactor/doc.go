// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness poller behind the FIFO reader: a
// level-triggered epoll backend on Linux and a poll(2) backend on other unix
// systems. Both satisfy api.Reactor.
package reactor
