//go:build linux

package reader_test

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/reactor"
	"github.com/momentics/hioload-fifo/reader"
)

// dirSwapReactor replaces the registered FIFO descriptor with a directory on
// the first wait and reports it readable, so the read fails with EISDIR.
type dirSwapReactor struct {
	api.Reactor
	dir     string
	fd      int
	swapped bool
	swapErr error
}

func (d *dirSwapReactor) Register(fd int, interest api.EventMask) error {
	d.fd = fd
	return d.Reactor.Register(fd, interest)
}

func (d *dirSwapReactor) Wait(timeout time.Duration, out []api.Event) (int, error) {
	if d.swapped {
		return d.Reactor.Wait(timeout, out)
	}
	d.swapped = true
	dirFd, err := unix.Open(d.dir, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		d.swapErr = err
		return 0, err
	}
	defer unix.Close(dirFd)
	if err := unix.Dup2(dirFd, d.fd); err != nil {
		d.swapErr = err
		return 0, err
	}
	out[0] = api.Event{Fd: d.fd, Events: api.EventRead}
	return 1, nil
}

func TestReadErrorEndsSequence(t *testing.T) {
	cfg := testConfig(t)
	swap := &dirSwapReactor{dir: t.TempDir()}
	r := newReader(t, cfg, reader.WithReactorFactory(func() (api.Reactor, error) {
		inner, err := reactor.New()
		if err != nil {
			return nil, err
		}
		swap.Reactor = inner
		return swap, nil
	}))

	seq, err := r.Lines(true)
	require.NoError(t, err)

	assert.False(t, seq.Next())
	require.NoError(t, swap.swapErr)
	assert.ErrorIs(t, seq.Err(), api.ErrReadFailed)
	assert.ErrorIs(t, seq.Err(), syscall.EISDIR)
	assert.Equal(t, api.ReaderIdle, r.State())
	assert.False(t, r.StopRequested())

	// the fifo is still usable by a fresh sequence
	again, err := r.Lines(true)
	require.NoError(t, err)
	require.NoError(t, again.Close())
	_, err = os.Stat(cfg.Path)
	assert.NoError(t, err)
}
