// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reader implements the resilient FIFO reader: a poll loop over one
// named-pipe descriptor that yields lines (or fixed-size chunks), survives the
// writer side disconnecting and reconnecting any number of times, and stops
// cooperatively when another goroutine calls RequestStop.
//
// A Reader hands out one Sequence at a time. The Sequence is driven by the
// consumer's goroutine, which alone owns the descriptor and its poll
// registration:
//
//	r, err := reader.New(reader.DefaultConfig("/var/log/app.fifo"))
//	if err != nil {
//	    return err
//	}
//	lines, err := r.Lines(true)
//	if err != nil {
//	    return err
//	}
//	defer lines.Close()
//	for lines.Next() {
//	    fmt.Println(lines.Text())
//	}
//	return lines.Err()
//
// State machine: Idle -> Opening -> Polling <-> Reopening. A sequence that
// ends without a stop request returns the reader to Idle; after a stop it is
// Closed for good. The
// stop flag is honoured at the start of every pull, after every poll
// timeout, on every readable event and between reopen attempts, so a stop
// takes effect within one polling timeout.
package reader
