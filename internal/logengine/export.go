package logengine

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/nockpoint/nockit/internal/utils/fileutil"
	"github.com/nockpoint/nockit/internal/utils/logger"
	nockerrors "github.com/nockpoint/nockit/pkg/errors"
)

type exportRenderer func(entries []LogEntry) ([]byte, error)

// renderers maps export format names to their serializers.
var renderers = map[string]exportRenderer{
	"json": renderJSON,
	"csv":  renderCSV,
	"txt":  renderText,
}

// ExportLogs parses every discovered log file, merges all records sorted by
// ascending timestamp (stable, so ties keep encounter order), renders them in
// the requested format and writes the result atomically to output.
//
// The merged set is buffered in memory before writing; very large log
// directories pay for that in RSS.
func ExportLogs(ctx context.Context, w io.Writer, logDir, format, output string) error {
	render, ok := renderers[format]
	if !ok {
		return nockerrors.NewFormatError(format)
	}

	files, err := FindLogFiles(logDir)
	if err != nil {
		return fmt.Errorf("locate log files in %s: %w", logDir, err)
	}

	var all []LogEntry
	for _, file := range files {
		entries, err := ParseLogFile(file)
		if err != nil {
			logger.Get(ctx).Warnf("Skipping unreadable file %s: %v", file, err)
			continue
		}
		all = append(all, entries...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	data, err := render(all)
	if err != nil {
		return fmt.Errorf("render %s export: %w", format, err)
	}
	if err := fileutil.AtomicWriteFile(output, data, 0644); err != nil {
		return nockerrors.NewOutputError(output, err)
	}

	fmt.Fprintf(w, "Exported %d log entries to %s\n", len(all), output)
	return nil
}

// renderJSON emits a self-describing array of full records including Fields.
func renderJSON(entries []LogEntry) ([]byte, error) {
	if entries == nil {
		entries = []LogEntry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// renderCSV emits timestamp,level,target,message rows. Fields is dropped:
// CSV has no nested-structure representation.
func renderCSV(entries []LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"timestamp", "level", "target", "message"}); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		record := []string{
			entry.Timestamp.Format(time.RFC3339),
			entry.Level,
			entry.Target,
			entry.Message,
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// renderText emits one "<timestamp> <level> <target>: <message>" line per
// record, the same grammar the text decoder reads back.
func renderText(entries []LogEntry) ([]byte, error) {
	var buf bytes.Buffer
	for _, entry := range entries {
		fmt.Fprintf(&buf, "%s %s %s: %s\n",
			entry.Timestamp.Format(time.RFC3339),
			entry.Level,
			entry.Target,
			entry.Message,
		)
	}
	return buf.Bytes(), nil
}
