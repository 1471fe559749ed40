// File: internal/framing/framer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Turns raw pipe reads into items: newline-delimited lines or fixed-size
// chunks. Complete items wait in a FIFO queue so a single read carrying
// several lines is delivered across successive pulls.

package framing

import (
	"bytes"

	"github.com/eapache/queue"
)

// DefaultMaxItem bounds a line that never sees its newline.
const DefaultMaxItem = 1 << 20

// Framer accumulates bytes and splits them into items.
// Not safe for concurrent use; it belongs to the read loop.
type Framer struct {
	buf     []byte
	pending *queue.Queue

	chunk int  // >0: fixed-size chunk mode
	strip bool // line mode: drop trailing "\n" / "\r\n"
	max   int  // line mode: longest line kept whole; longer ones are split
}

// NewLines returns a line framer. maxItem <= 0 selects DefaultMaxItem.
func NewLines(strip bool, maxItem int) *Framer {
	if maxItem <= 0 {
		maxItem = DefaultMaxItem
	}
	return &Framer{
		pending: queue.New(),
		strip:   strip,
		max:     maxItem,
	}
}

// NewChunks returns a framer emitting size-byte chunks. size must be > 0.
func NewChunks(size int) *Framer {
	if size <= 0 {
		panic("framing: chunk size must be positive")
	}
	return &Framer{
		pending: queue.New(),
		chunk:   size,
	}
}

// Feed appends p and queues every complete item it produces.
func (f *Framer) Feed(p []byte) {
	if len(p) == 0 {
		return
	}
	f.buf = append(f.buf, p...)
	if f.chunk > 0 {
		f.splitChunks()
		return
	}
	f.splitLines()
}

// Flush queues whatever partial item is buffered, e.g. a last line written
// without a newline before the writer hung up.
func (f *Framer) Flush() {
	if len(f.buf) == 0 {
		return
	}
	f.push(f.buf)
	f.buf = f.buf[:0]
}

// Pop removes the oldest complete item.
func (f *Framer) Pop() (string, bool) {
	if f.pending.Length() == 0 {
		return "", false
	}
	return f.pending.Remove().(string), true
}

// Pending is the number of complete items waiting.
func (f *Framer) Pending() int {
	return f.pending.Length()
}

// Buffered is the number of bytes held for an incomplete item.
func (f *Framer) Buffered() int {
	return len(f.buf)
}

// Reset discards queued items and buffered bytes.
func (f *Framer) Reset() {
	f.buf = f.buf[:0]
	f.pending = queue.New()
}

func (f *Framer) splitChunks() {
	off := 0
	for len(f.buf)-off >= f.chunk {
		f.pending.Add(string(f.buf[off : off+f.chunk]))
		off += f.chunk
	}
	f.compact(off)
}

func (f *Framer) splitLines() {
	off := 0
	for {
		i := bytes.IndexByte(f.buf[off:], '\n')
		if i < 0 {
			break
		}
		f.push(f.buf[off : off+i+1])
		off += i + 1
	}
	// a trailing '\r' may be the first half of "\r\n" and is not counted
	for {
		rest := len(f.buf) - off
		if rest > 0 && f.buf[len(f.buf)-1] == '\r' {
			rest--
		}
		if rest <= f.max {
			break
		}
		end := off + f.max
		if f.max > 1 && f.buf[end-1] == '\r' {
			end--
		}
		f.push(f.buf[off:end])
		off = end
	}
	f.compact(off)
}

func (f *Framer) push(item []byte) {
	if f.strip {
		item = trimNewline(item)
	}
	f.pending.Add(string(item))
}

// compact drops the first off bytes, keeping the backing array.
func (f *Framer) compact(off int) {
	if off == 0 {
		return
	}
	n := copy(f.buf, f.buf[off:])
	f.buf = f.buf[:n]
}

func trimNewline(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}
