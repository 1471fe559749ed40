package facade_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-fifo/api"
	"github.com/momentics/hioload-fifo/facade"
	"github.com/momentics/hioload-fifo/reader"
)

func TestDefaultConfig(t *testing.T) {
	cfg := facade.DefaultConfig()
	assert.Equal(t, "0o666", cfg.CreateMode)
	assert.Equal(t, 1.0, cfg.PollingTimeout)
	assert.Equal(t, 1.0, cfg.ReopenBackoff)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.ErrorIs(t, cfg.Validate(), api.ErrInvalidArgument, "path is required")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "fifo.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
path: /run/app.fifo
create_if_missing: true
create_mode: "0o640"
polling_timeout: 0.25
log_level: debug
`), 0o600))

	cfg, err := facade.LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "/run/app.fifo", cfg.Path)
	assert.True(t, cfg.CreateIfMissing)
	assert.Equal(t, "0o640", cfg.CreateMode)
	assert.Equal(t, 1.0, cfg.ReopenBackoff, "missing keys keep defaults")

	rc := cfg.ReaderConfig()
	assert.Equal(t, 250*time.Millisecond, rc.PollingTimeout)
	assert.Equal(t, time.Second, rc.ReopenBackoff)
	assert.Equal(t, reader.DefaultReadBufferSize, rc.ReadBufferSize)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := facade.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	for name, body := range map[string]string{
		"syntax":  "path: [unterminated",
		"mode":    "path: /x\ncreate_if_missing: true\ncreate_mode: abc\n",
		"timeout": "path: /x\npolling_timeout: -1\n",
		"level":   "path: /x\nlog_level: loud\n",
		"nopath":  "create_mode: '0o600'\n",
	} {
		file := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
		_, err := facade.LoadConfig(file)
		assert.Error(t, err, name)
	}

	file := filepath.Join(dir, "mode.yaml")
	_, err = facade.LoadConfig(file)
	assert.ErrorIs(t, err, api.ErrInvalidMode)
}

func newFacade(t *testing.T) *facade.FiFoFile {
	t.Helper()
	cfg := facade.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "facade.fifo")
	cfg.CreateIfMissing = true
	cfg.PollingTimeout = 0.02
	cfg.ReopenBackoff = 0.02
	logger, _ := test.NewNullLogger()
	f, err := facade.New(cfg, facade.WithLogger(logger))
	require.NoError(t, err)
	return f
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := facade.New(nil)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	cfg := facade.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "absent")
	_, err = facade.New(cfg)
	assert.ErrorIs(t, err, api.ErrNotAFifo)
}

func TestFiFoFileRoundTrip(t *testing.T) {
	f := newFacade(t)
	assert.True(t, facade.IsFifoFile(f.Path()))

	seq, err := f.ReadLines(true)
	require.NoError(t, err)
	defer seq.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.WriteLine(ctx, "hello world", true))

	require.True(t, seq.Next(), "%v", seq.Err())
	assert.Equal(t, "hello world", seq.Text())

	stats := f.GetControl().Stats()
	assert.Equal(t, int64(1), stats[reader.MetricItems])
	assert.Equal(t, "polling", stats["debug.reader.state"])
	assert.Equal(t, f.Path(), f.GetControl().GetConfig()["path"])
	assert.Contains(t, f.GetDebugAPI().DumpState(), "platform.os")

	require.NoError(t, f.Shutdown())
	assert.False(t, seq.Next())
	assert.NoError(t, seq.Err())
	assert.Equal(t, api.ReaderClosed, f.State())
}

func TestFiFoFileChunks(t *testing.T) {
	f := newFacade(t)
	_, err := f.Read(0)
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	seq, err := f.Read(2)
	require.NoError(t, err)
	defer seq.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.WriteLine(ctx, "abc", true))

	var got []string
	for len(got) < 2 && seq.Next() {
		got = append(got, seq.Text())
	}
	assert.Equal(t, []string{"ab", "c\n"}, got)
}

func TestCreateFifoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node")
	created, err := facade.CreateFifoFile(path, "0o600", true)
	require.NoError(t, err)
	assert.True(t, created)

	_, err = facade.CreateFifoFile(path, "0o600", true)
	assert.ErrorIs(t, err, api.ErrAlreadyExists)
}

func TestModeCheckedOnlyWhenCreating(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fifo.yaml")
	require.NoError(t, os.WriteFile(file, []byte("path: /x\ncreate_mode: abc\n"), 0o600))

	cfg, err := facade.LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.CreateMode)

	cfg.CreateIfMissing = true
	assert.ErrorIs(t, cfg.Validate(), api.ErrInvalidMode)
}
