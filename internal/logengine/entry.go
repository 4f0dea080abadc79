// Package logengine implements nockit's log ingestion, tailing, search,
// analysis and export engine. Log files are produced by external nockchain
// processes; this package only reads, scans and (for cleanup) deletes them.
package logengine

import "time"

// LogEntry is the canonical parsed record. One is constructed per source line
// and never mutated afterwards.
type LogEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Level     string            `json:"level"`
	Target    string            `json:"target"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// TimeRange is the closed interval of timestamps observed during analysis.
type TimeRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// LogStats aggregates parsed records inside one analysis window.
//
// TimeRange stays nil until the first in-window record is folded, so a run
// that matched nothing reports "no data" instead of a fabricated range.
type LogStats struct {
	TotalEntries  int            `json:"total_entries"`
	LevelCounts   map[string]int `json:"level_counts"`
	TargetCounts  map[string]int `json:"target_counts"`
	ErrorPatterns []string       `json:"error_patterns"`
	TimeRange     *TimeRange     `json:"time_range,omitempty"`
}

// NewLogStats returns an empty accumulator.
func NewLogStats() *LogStats {
	return &LogStats{
		LevelCounts:  make(map[string]int),
		TargetCounts: make(map[string]int),
	}
}

// Fold adds one entry to the accumulator. Folding is commutative over entry
// order: counts, min/max and the error-pattern multiset do not depend on it.
func (s *LogStats) Fold(entry LogEntry) {
	s.TotalEntries++
	s.LevelCounts[entry.Level]++
	s.TargetCounts[entry.Target]++

	if entry.Level == "ERROR" {
		s.ErrorPatterns = append(s.ErrorPatterns, entry.Message)
	}

	if s.TimeRange == nil {
		s.TimeRange = &TimeRange{Earliest: entry.Timestamp, Latest: entry.Timestamp}
		return
	}
	if entry.Timestamp.Before(s.TimeRange.Earliest) {
		s.TimeRange.Earliest = entry.Timestamp
	}
	if entry.Timestamp.After(s.TimeRange.Latest) {
		s.TimeRange.Latest = entry.Timestamp
	}
}
