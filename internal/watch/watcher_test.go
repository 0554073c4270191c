package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_FiresOnYAMLWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "charter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.0\n"), 0o644))

	var fired atomic.Int32
	w, err := New(dir, zaptest.NewLogger(t), func() { fired.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("version: 1.0.1\n"), 0o644))

	require.Eventually(t, func() bool { return fired.Load() > 0 },
		5*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresNonYAML(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New(dir, zaptest.NewLogger(t), func() { fired.Add(1) })
	require.NoError(t, err)
	require.NoError(t, w.Start())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	w.Stop()

	assert.Zero(t, fired.Load())
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	w := &Watcher{lastSeen: map[string]time.Time{}}

	assert.False(t, w.debounced("a.yaml"))
	assert.True(t, w.debounced("a.yaml"), "second hit inside the window")
	assert.False(t, w.debounced("b.yaml"), "distinct paths debounce independently")
}

func TestWatcher_StopIsClean(t *testing.T) {
	w, err := New(t.TempDir(), zaptest.NewLogger(t), func() {})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	w.Stop()
}
