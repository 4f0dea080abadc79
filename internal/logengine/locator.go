package logengine

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/nockpoint/nockit/internal/config"
	"github.com/nockpoint/nockit/internal/utils/fileutil"
)

// FindLogFiles returns the regular files under dir whose name ends in ".log".
// A missing directory is a normal state ("no logs yet") and yields an empty
// result, not an error.
func FindLogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == config.LogFileExt {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// LatestLogFile selects the most recently modified file from the given set.
// Modification-time ties break on path order so the choice is deterministic
// within one run. Returns "" for an empty set.
func LatestLogFile(files []string) string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	latest := ""
	var latestMod int64
	for _, path := range sorted {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = path
			latestMod = mod
		}
	}
	return latest
}

// ParseLogFile reads a whole file and parses every line. Parsing never fails
// per line; only the file read itself can error.
func ParseLogFile(path string) ([]LogEntry, error) {
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return nil, err
	}
	entries := make([]LogEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, ParseLine(line))
	}
	return entries, nil
}
