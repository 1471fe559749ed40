package control_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-fifo/control"
)

func TestMetricsCounters(t *testing.T) {
	mr := control.NewMetricsRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mr.Add("reader.items", 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), mr.Counter("reader.items"))
	assert.Zero(t, mr.Counter("missing"))
	assert.False(t, mr.Updated().IsZero())

	mr.Set("reader.path", "/tmp/p")
	snap := mr.GetSnapshot()
	assert.Equal(t, "/tmp/p", snap["reader.path"])
	snap["reader.path"] = "mutated"
	assert.Equal(t, "/tmp/p", mr.GetSnapshot()["reader.path"])
}

func TestNilMetricsIsNoop(t *testing.T) {
	var mr *control.MetricsRegistry
	assert.NotPanics(t, func() { mr.Add("x", 1) })
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	dp.RegisterProbe("reader.state", func() any { return "polling" })

	state := dp.DumpState()
	assert.Equal(t, "polling", state["reader.state"])
	assert.Contains(t, state, "platform.os")
	assert.Contains(t, state, "platform.pid")
}

func TestConfigSnapshotIsCopied(t *testing.T) {
	src := map[string]any{"path": "/tmp/p"}
	cs := control.NewConfigSnapshot(src)
	src["path"] = "changed"
	assert.Equal(t, "/tmp/p", cs.GetSnapshot()["path"])
}
