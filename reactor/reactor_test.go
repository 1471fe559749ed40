//go:build unix

package reactor_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/reactor"
)

func newPipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

func TestReactorTimeoutWithoutEvents(t *testing.T) {
	re, err := reactor.New()
	require.NoError(t, err)
	defer re.Close()

	r, _ := newPipe(t)
	require.NoError(t, re.Register(int(r.Fd()), api.EventInterest))

	events := make([]api.Event, 4)
	start := time.Now()
	n, err := re.Wait(50*time.Millisecond, events)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestReactorReadable(t *testing.T) {
	re, err := reactor.New()
	require.NoError(t, err)
	defer re.Close()

	r, w := newPipe(t)
	fd := int(r.Fd())
	require.NoError(t, re.Register(fd, api.EventInterest))

	_, err = w.Write([]byte("x\n"))
	require.NoError(t, err)

	events := make([]api.Event, 4)
	n, err := re.Wait(time.Second, events)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.Equal(t, fd, events[0].Fd)
	assert.True(t, events[0].Events.Has(api.EventRead))
	assert.False(t, events[0].Events.Has(api.EventHangup))
}

func TestReactorHangup(t *testing.T) {
	re, err := reactor.New()
	require.NoError(t, err)
	defer re.Close()

	r, w := newPipe(t)
	require.NoError(t, re.Register(int(r.Fd()), api.EventInterest))
	require.NoError(t, w.Close())

	events := make([]api.Event, 4)
	n, err := re.Wait(time.Second, events)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.True(t, events[0].Events.Has(api.EventHangup))
}

func TestReactorUnregister(t *testing.T) {
	re, err := reactor.New()
	require.NoError(t, err)
	defer re.Close()

	r, w := newPipe(t)
	fd := int(r.Fd())
	require.NoError(t, re.Register(fd, api.EventInterest))
	require.NoError(t, re.Unregister(fd))
	assert.ErrorIs(t, re.Unregister(fd), reactor.ErrNotRegistered)

	_, err = w.Write([]byte("ignored"))
	require.NoError(t, err)
	n, err := re.Wait(20*time.Millisecond, make([]api.Event, 4))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReactorClose(t *testing.T) {
	re, err := reactor.New()
	require.NoError(t, err)
	require.NoError(t, re.Close())
	require.NoError(t, re.Close())

	_, err = re.Wait(time.Millisecond, make([]api.Event, 1))
	assert.ErrorIs(t, err, reactor.ErrClosed)
	assert.ErrorIs(t, re.Register(0, api.EventRead), reactor.ErrClosed)
}
