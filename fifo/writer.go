// File: fifo/writer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fifo

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fifo/api"
)

// readerWaitInterval is how often WriteLine retries the open while no reader
// holds the FIFO.
const readerWaitInterval = 10 * time.Millisecond

// WriteLine opens path for writing, writes text followed by a newline when
// it lacks one, and closes the handle. Every call uses a fresh handle.
//
// A FIFO cannot be opened for writing until a reader has it open; WriteLine
// waits for one until ctx ends. With flush false the buffered text is
// written out when the handle is closed rather than right after the write.
func WriteLine(ctx context.Context, path, text string, flush bool) error {
	f, err := openWriter(ctx, path)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	w := bufio.NewWriter(f)
	_, err = w.WriteString(text)
	if err == nil && flush {
		err = w.Flush()
	}
	if cerr := closeWriter(w, f); err == nil {
		err = cerr
	}
	if err != nil {
		return api.NewError(api.ErrCodeWriteFailed, "error writing to fifo file").
			Wrap(err).WithContext("path", path)
	}
	return nil
}

// openWriter opens the write end without blocking in open(2): O_NONBLOCK
// fails with ENXIO while there is no reader, which is retried until ctx ends.
// The descriptor is switched back to blocking mode for the write.
func openWriter(ctx context.Context, path string) (*os.File, error) {
	openErr := func(err error) error {
		return api.NewError(api.ErrCodeOpenFailed, "error opening fifo file").
			Wrap(err).WithContext("path", path)
	}
	for {
		fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		switch err {
		case nil:
			if err := unix.SetNonblock(fd, false); err != nil {
				_ = unix.Close(fd)
				return nil, openErr(err)
			}
			return os.NewFile(uintptr(fd), path), nil
		case unix.EINTR:
			continue
		case unix.ENXIO:
		default:
			return nil, openErr(err)
		}

		t := time.NewTimer(readerWaitInterval)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, openErr(ctx.Err())
		case <-t.C:
		}
	}
}

// closeWriter drains w and closes f; the first error wins.
func closeWriter(w *bufio.Writer, f *os.File) error {
	err := w.Flush()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
