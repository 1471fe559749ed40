package fifo_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/fifo"
)

func TestParseMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want os.FileMode
	}{
		{"0o644", 0o644},
		{"0O600", 0o600},
		{"0644", 0o644},
		{"666", 0o666},
		{"0o1777", os.ModeSticky | 0o777},
	} {
		got, err := fifo.ParseMode(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"abc", "", "0o", "0o9", "0x644", "17777", "-1"} {
		_, err := fifo.ParseMode(bad)
		assert.ErrorIs(t, err, api.ErrInvalidMode, bad)
	}
}

func TestCreateNode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.fifo")

	created, err := fifo.CreateNode(path, "0o644", false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, fifo.IsFifo(path))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	created, err = fifo.CreateNode(path, "0o644", false)
	require.NoError(t, err)
	assert.False(t, created, "existing path is left alone")

	_, err = fifo.CreateNode(path, "0o644", true)
	assert.ErrorIs(t, err, api.ErrAlreadyExists)
}

func TestCreateNodeInvalidMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.fifo")
	_, err := fifo.CreateNode(path, "abc", false)
	assert.ErrorIs(t, err, api.ErrInvalidMode)
	assert.NoFileExists(t, path)
}

func TestCreateNodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "node.fifo")
	_, err := fifo.CreateNode(path, "0o600", false)
	assert.ErrorIs(t, err, api.ErrCreateFailed)
	assert.ErrorIs(t, err, syscall.ENOENT)
}

func TestIsFifo(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular")
	require.NoError(t, os.WriteFile(regular, []byte("x"), 0o600))

	assert.False(t, fifo.IsFifo(regular))
	assert.False(t, fifo.IsFifo(filepath.Join(dir, "missing")))
	assert.False(t, fifo.IsFifo(dir))

	path := filepath.Join(dir, "p")
	require.NoError(t, syscall.Mkfifo(path, 0o600))
	assert.True(t, fifo.IsFifo(path))
}

func TestEnsure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p")
	require.NoError(t, fifo.Ensure(path, "0o600"))
	require.NoError(t, fifo.Ensure(path, "0o600"))
	assert.True(t, fifo.IsFifo(path))

	regular := filepath.Join(dir, "regular")
	require.NoError(t, os.WriteFile(regular, nil, 0o600))
	assert.ErrorIs(t, fifo.Ensure(regular, "0o600"), api.ErrCreateFailed)
}

func TestWriteLineDelivers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.fifo")
	require.NoError(t, syscall.Mkfifo(path, 0o600))

	r, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, fifo.WriteLine(ctx, path, "hello world", true))
	require.NoError(t, fifo.WriteLine(ctx, path, "second\n", false))

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world\nsecond\n", string(data))
}

func TestWriteLineWaitsForReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.fifo")
	require.NoError(t, syscall.Mkfifo(path, 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := fifo.WriteLine(ctx, path, "nobody listening", true)
	assert.ErrorIs(t, err, api.ErrOpenFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWriteLineMissingPath(t *testing.T) {
	err := fifo.WriteLine(context.Background(), filepath.Join(t.TempDir(), "missing"), "x", true)
	assert.ErrorIs(t, err, api.ErrOpenFailed)
	assert.ErrorIs(t, err, syscall.ENOENT)
}
