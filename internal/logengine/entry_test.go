package logengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entryAt(ts time.Time, level, target, message string) LogEntry {
	return LogEntry{Timestamp: ts, Level: level, Target: target, Message: message}
}

func TestLogStatsFold(t *testing.T) {
	stats := NewLogStats()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	stats.Fold(entryAt(t0, "ERROR", "net", "boom"))
	stats.Fold(entryAt(t0.Add(5*time.Second), "WARN", "disk", "low space"))
	stats.Fold(entryAt(t0.Add(-time.Minute), "INFO", "net", "hello"))

	assert.Equal(t, 3, stats.TotalEntries)
	assert.Equal(t, 2, stats.TargetCounts["net"])
	assert.Equal(t, []string{"boom"}, stats.ErrorPatterns)
	assert.Equal(t, t0.Add(-time.Minute), stats.TimeRange.Earliest)
	assert.Equal(t, t0.Add(5*time.Second), stats.TimeRange.Latest)
}

func TestLogStatsEmptyHasNoRange(t *testing.T) {
	stats := NewLogStats()
	assert.Nil(t, stats.TimeRange)
	assert.Zero(t, stats.TotalEntries)
}

// Fold order must not change the aggregate (error-pattern order aside).
func TestLogStatsFoldOrderIndependent(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []LogEntry{
		entryAt(t0, "ERROR", "net", "boom"),
		entryAt(t0.Add(time.Second), "INFO", "net", "ok"),
		entryAt(t0.Add(2*time.Second), "ERROR", "disk", "bad sector"),
	}

	forward := NewLogStats()
	for _, e := range entries {
		forward.Fold(e)
	}
	backward := NewLogStats()
	for i := len(entries) - 1; i >= 0; i-- {
		backward.Fold(entries[i])
	}

	assert.Equal(t, forward.TotalEntries, backward.TotalEntries)
	assert.Equal(t, forward.LevelCounts, backward.LevelCounts)
	assert.Equal(t, forward.TargetCounts, backward.TargetCounts)
	assert.Equal(t, forward.TimeRange, backward.TimeRange)
	assert.ElementsMatch(t, forward.ErrorPatterns, backward.ErrorPatterns)
}
