package logengine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nxadm/tail"

	"github.com/nockpoint/nockit/internal/utils/logger"
)

// TailOptions controls a tail run.
type TailOptions struct {
	// Lines is the static line count (and the initial context in follow mode).
	Lines int
	// Follow keeps emitting newly appended lines until the context is
	// cancelled or the file becomes unreadable.
	Follow bool
	// OnLine, when set, observes every emitted line. Used by the follow
	// metrics exporter.
	OnLine func(line string)
}

// TailLogs serves the most recently modified log file in logDir to w.
// An empty file set is an informational outcome, not an error.
func TailLogs(ctx context.Context, w io.Writer, logDir string, opts TailOptions) error {
	files, err := FindLogFiles(logDir)
	if err != nil {
		return fmt.Errorf("locate log files in %s: %w", logDir, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No log files found in %s\n", logDir)
		return nil
	}

	latest := LatestLogFile(files)
	fmt.Fprintf(w, "Tailing log file: %s\n", latest)

	if opts.Follow {
		return tailFollow(ctx, w, latest, opts)
	}
	return tailStatic(w, latest, opts)
}

// tailStatic prints the last opts.Lines lines of the file. A single-pass ring
// buffer keeps memory at O(lines) regardless of file size.
func tailStatic(w io.Writer, path string, opts TailOptions) error {
	lines, err := LastLines(path, opts.Lines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
		if opts.OnLine != nil {
			opts.OnLine(line)
		}
	}
	return nil
}

// LastLines returns at most maxLines from the end of the file at path, in
// original order. A file with fewer lines yields all of them.
func LastLines(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// tailFollow prints the static context, then streams appended lines in exact
// append order until ctx is cancelled or a non-recoverable read error occurs.
// The underlying handle is closed promptly on cancellation.
func tailFollow(ctx context.Context, w io.Writer, path string, opts TailOptions) error {
	if err := tailStatic(w, path, opts); err != nil {
		return err
	}
	fmt.Fprintln(w, "\n--- Following log file (Ctrl+C to exit) ---")

	t, err := tail.TailFile(path, tail.Config{
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Follow:   true,
		// Poll keeps the 100ms suspend-and-retry behavior working on
		// filesystems where inotify does not.
		Poll:      true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("follow %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Get(ctx).Debugf("follow cancelled for %s", path)
			if err := t.Stop(); err != nil {
				return err
			}
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				// Channel closed without cancellation: surface the cause.
				if err := t.Err(); err != nil {
					return fmt.Errorf("follow %s: %w", path, err)
				}
				return nil
			}
			if line.Err != nil {
				t.Stop()
				return fmt.Errorf("follow %s: %w", path, line.Err)
			}
			fmt.Fprintln(w, line.Text)
			if opts.OnLine != nil {
				opts.OnLine(line.Text)
			}
		}
	}
}
