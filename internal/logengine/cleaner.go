package logengine

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nockpoint/nockit/internal/utils/fmtutil"
	"github.com/nockpoint/nockit/internal/utils/logger"
)

// CleanLogs deletes log files whose modification time is older than
// now - days. With dryRun it only reports what would be deleted. A failure
// to delete one file is logged and does not abort the sweep.
func CleanLogs(ctx context.Context, w io.Writer, logDir string, days int, dryRun bool) error {
	cutoff := time.Now().AddDate(0, 0, -days)

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		fmt.Fprintf(w, "Log directory does not exist: %s\n", logDir)
		return nil
	}

	files, err := FindLogFiles(logDir)
	if err != nil {
		return fmt.Errorf("locate log files in %s: %w", logDir, err)
	}

	fmt.Fprintf(w, "Cleaning logs older than %d days (cutoff: %s)\n", days, cutoff.UTC().Format(time.RFC3339))

	cleaned := 0
	var totalSize uint64
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			logger.Get(ctx).Warnf("Skipping %s: %v", path, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		size := uint64(info.Size())
		if dryRun {
			fmt.Fprintf(w, "Would delete: %s (%s)\n", path, fmtutil.FormatBytes(size))
			totalSize += size
			cleaned++
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Get(ctx).Warnf("Failed to delete %s: %v", path, err)
			continue
		}
		fmt.Fprintf(w, "Deleted: %s (%s)\n", path, fmtutil.FormatBytes(size))
		totalSize += size
		cleaned++
	}

	if dryRun {
		fmt.Fprintf(w, "Dry run completed. Would delete %d files (%s total)\n", cleaned, fmtutil.FormatBytes(totalSize))
	} else {
		fmt.Fprintf(w, "Cleaned %d log files (%s total)\n", cleaned, fmtutil.FormatBytes(totalSize))
	}
	return nil
}
