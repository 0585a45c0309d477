package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectChanges waits up to the deadline for at least one onChange call.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) add(p string) {
	c.mu.Lock()
	c.paths = append(c.paths, p)
	c.mu.Unlock()
}

func (c *collector) wait(t *testing.T, deadline time.Duration) []string {
	t.Helper()
	end := time.Now().Add(deadline)
	for time.Now().Before(end) {
		c.mu.Lock()
		n := len(c.paths)
		c.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestWatch_FiresOnMarkdownWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var c collector
	require.NoError(t, w.Watch(dir, c.add))

	path := filepath.Join(dir, "battery.md")
	require.NoError(t, os.WriteFile(path, []byte("# Battery\n"), 0644))

	paths := c.wait(t, 2*time.Second)
	require.NotEmpty(t, paths, "markdown create should fire")
	assert.Equal(t, path, paths[0])
}

func TestWatch_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var c collector
	require.NoError(t, w.Watch(dir, c.add))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	paths := c.wait(t, 300*time.Millisecond)
	assert.Empty(t, paths)
}

func TestWatch_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "concepts")
	require.NoError(t, os.Mkdir(sub, 0755))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var c collector
	require.NoError(t, w.Watch(dir, c.add))

	path := filepath.Join(sub, "motor.md")
	require.NoError(t, os.WriteFile(path, []byte("# Motor\n"), 0644))

	paths := c.wait(t, 2*time.Second)
	require.NotEmpty(t, paths)
	assert.Equal(t, path, paths[0])
}

func TestStop_SafeTwice(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
