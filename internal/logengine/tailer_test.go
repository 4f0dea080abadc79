package logengine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the test read while the follow goroutine writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLastLinesBound(t *testing.T) {
	dir := t.TempDir()
	var content strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&content, "line %d\n", i)
	}
	path := writeLog(t, dir, "ten.log", content.String())

	tests := []struct {
		name     string
		maxLines int
		want     []string
	}{
		{"fewer than file", 3, []string{"line 8", "line 9", "line 10"}},
		{"exactly file size", 10, []string{"line 1", "line 2", "line 3", "line 4", "line 5", "line 6", "line 7", "line 8", "line 9", "line 10"}},
		{"more than file", 20, []string{"line 1", "line 2", "line 3", "line 4", "line 5", "line 6", "line 7", "line 8", "line 9", "line 10"}},
		{"zero", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := LastLines(path, tt.maxLines)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestTailLogsNoFiles(t *testing.T) {
	var buf bytes.Buffer
	err := TailLogs(context.Background(), &buf, filepath.Join(t.TempDir(), "logs"), TailOptions{Lines: 10})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No log files found")
}

func TestTailLogsPicksLatest(t *testing.T) {
	dir := t.TempDir()
	old := writeLog(t, dir, "old.log", "old line\n")
	recent := writeLog(t, dir, "recent.log", "recent line\n")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, base, base))
	require.NoError(t, os.Chtimes(recent, base.Add(time.Minute), base.Add(time.Minute)))

	var buf bytes.Buffer
	require.NoError(t, TailLogs(context.Background(), &buf, dir, TailOptions{Lines: 10}))

	out := buf.String()
	assert.Contains(t, out, "recent.log")
	assert.Contains(t, out, "recent line")
	assert.NotContains(t, out, "old line")
}

// TestTailFollowOrdering appends lines after follow mode starts and checks
// they are emitted in append order with no gaps or duplicates.
func TestTailFollowOrdering(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "live.log", "context line\n")

	buf := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- TailLogs(ctx, buf, dir, TailOptions{Lines: 5, Follow: true})
	}()

	// Wait for the initial context to appear before appending.
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "context line")
	}, 5*time.Second, 10*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := fmt.Fprintf(f, "appended %d\n", i)
		require.NoError(t, err)
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "appended 5")
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	out := buf.String()
	last := -1
	for i := 1; i <= 5; i++ {
		idx := strings.Index(out, fmt.Sprintf("appended %d\n", i))
		require.NotEqual(t, -1, idx, "line %d missing from output", i)
		assert.Greater(t, idx, last, "line %d out of order", i)
		last = idx
		assert.Equal(t, 1, strings.Count(out, fmt.Sprintf("appended %d\n", i)), "line %d duplicated", i)
	}
}

func TestTailFollowCancelStops(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "live.log", "hello\n")

	ctx, cancel := context.WithCancel(context.Background())
	buf := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- TailLogs(ctx, buf, dir, TailOptions{Lines: 1, Follow: true})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "hello")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("follow mode did not stop on cancellation")
	}
}
