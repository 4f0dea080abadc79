package logengine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nockpoint/nockit/internal/utils/fmtutil"
	"github.com/nockpoint/nockit/internal/utils/logger"
	nockerrors "github.com/nockpoint/nockit/pkg/errors"
)

// ParsePeriod maps a symbolic analysis period to a duration. "1m" is a
// 30-day month, not one minute; the mapping is kept for compatibility with
// the existing command surface.
func ParsePeriod(period string) (time.Duration, error) {
	switch period {
	case "1h":
		return time.Hour, nil
	case "6h":
		return 6 * time.Hour, nil
	case "12h":
		return 12 * time.Hour, nil
	case "1d":
		return 24 * time.Hour, nil
	case "1w":
		return 7 * 24 * time.Hour, nil
	case "1m":
		return 30 * 24 * time.Hour, nil
	default:
		return 0, nockerrors.NewPeriodError(period)
	}
}

// AnalyzeSince parses every discovered log file and folds records whose
// timestamp is at or after cutoff into a LogStats. The fold is commutative,
// so file scan order cannot change counts or the time range.
func AnalyzeSince(ctx context.Context, logDir string, cutoff time.Time) (*LogStats, error) {
	files, err := FindLogFiles(logDir)
	if err != nil {
		return nil, fmt.Errorf("locate log files in %s: %w", logDir, err)
	}

	stats := NewLogStats()
	for _, file := range files {
		entries, err := ParseLogFile(file)
		if err != nil {
			// One unreadable file must not abort the whole batch.
			logger.Get(ctx).Warnf("Skipping unreadable file %s: %v", file, err)
			continue
		}
		for _, entry := range entries {
			if !entry.Timestamp.Before(cutoff) {
				stats.Fold(entry)
			}
		}
	}
	return stats, nil
}

// AnalyzeLogs resolves the symbolic period against the current wall clock,
// runs the fold, and renders the result to w. An empty file set is an
// informational outcome.
func AnalyzeLogs(ctx context.Context, w io.Writer, logDir string, period string) error {
	duration, err := ParsePeriod(period)
	if err != nil {
		return err
	}

	files, err := FindLogFiles(logDir)
	if err != nil {
		return fmt.Errorf("locate log files in %s: %w", logDir, err)
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No log files found for analysis")
		return nil
	}

	stats, err := AnalyzeSince(ctx, logDir, time.Now().Add(-duration))
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

// printStats renders totals, time range, level counts, the ten busiest
// targets and the first five error patterns.
func printStats(w io.Writer, stats *LogStats) {
	fmt.Fprintln(w, "\n=== Log Analysis Results ===")
	fmt.Fprintf(w, "Total entries: %s\n", fmtutil.FormatNumberWithComma(uint64(stats.TotalEntries)))

	if stats.TimeRange == nil {
		fmt.Fprintln(w, "Time range: no data")
	} else {
		fmt.Fprintf(w, "Time range: %s to %s\n",
			stats.TimeRange.Earliest.Format(time.RFC3339),
			stats.TimeRange.Latest.Format(time.RFC3339))
	}

	fmt.Fprintln(w, "\nLog levels:")
	for _, level := range sortedKeys(stats.LevelCounts) {
		fmt.Fprintf(w, "  %s: %d\n", level, stats.LevelCounts[level])
	}

	fmt.Fprintln(w, "\nTop targets:")
	type targetCount struct {
		target string
		count  int
	}
	targets := make([]targetCount, 0, len(stats.TargetCounts))
	for target, count := range stats.TargetCounts {
		targets = append(targets, targetCount{target, count})
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].count != targets[j].count {
			return targets[i].count > targets[j].count
		}
		return targets[i].target < targets[j].target
	})
	for i, tc := range targets {
		if i >= 10 {
			break
		}
		fmt.Fprintf(w, "  %s: %d\n", tc.target, tc.count)
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Fprintln(w, "\nRecent error patterns:")
		for i, pattern := range stats.ErrorPatterns {
			if i >= 5 {
				break
			}
			fmt.Fprintf(w, "  %d: %s\n", i+1, pattern)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
