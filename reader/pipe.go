// File: reader/pipe.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reader

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fifo/api"
)

// pipeHandle is the read end of the FIFO. It is opened non-blocking so that
// opening never waits for a writer and a spurious wakeup never blocks a read.
type pipeHandle struct {
	fd   int
	path string
}

func openPipe(path string) (*pipeHandle, error) {
	var fd int
	for {
		var err error
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, api.NewError(api.ErrCodeOpenFailed, "failed to open fifo for reading").
				Wrap(err).WithContext("path", path)
		}
		break
	}

	// the path may have been replaced since construction
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil || st.Mode&unix.S_IFMT != unix.S_IFIFO {
		_ = unix.Close(fd)
		e := api.NewError(api.ErrCodeOpenFailed, "path is no longer a fifo file").
			WithContext("path", path)
		if err != nil {
			e.Wrap(err)
		}
		return nil, e
	}
	return &pipeHandle{fd: fd, path: path}, nil
}

func (p *pipeHandle) read(b []byte) (int, error) {
	return unix.Read(p.fd, b)
}

func (p *pipeHandle) close() error {
	if p.fd < 0 {
		return nil
	}
	err := unix.Close(p.fd)
	p.fd = -1
	return err
}

// retryable reports read errors that only mean "nothing to read right now".
func retryable(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)
}
