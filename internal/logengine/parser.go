package logengine

import (
	"encoding/json"
	"regexp"
	"time"
)

// textLineRe matches the plain-text log grammar:
// <ISO-8601 timestamp> <LEVEL> <target>: <message>
// Fractional seconds and numeric zone offsets are optional.
var textLineRe = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2}))\s+(\w+)\s+(\S+):\s(.+)$`)

// reservedKeys are the structured-record keys lifted into dedicated LogEntry
// fields; everything else lands in Fields.
var reservedKeys = map[string]bool{
	"timestamp": true,
	"level":     true,
	"target":    true,
	"message":   true,
}

type lineDecoder func(string) (LogEntry, bool)

// decoders is the ordered attempt chain: structured decode first, then the
// text grammar. ParseLine falls back to a raw record when all of them miss.
var decoders = []lineDecoder{decodeStructured, decodeText}

// ParseLine converts one raw line into exactly one LogEntry. It is total:
// any input, including empty strings and binary garbage, yields a record and
// never an error. Unparseable lines degrade to an UNKNOWN-level record whose
// message is the line verbatim.
func ParseLine(line string) LogEntry {
	for _, decode := range decoders {
		if entry, ok := decode(line); ok {
			return entry
		}
	}
	return LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     "UNKNOWN",
		Target:    "unknown",
		Message:   line,
		Fields:    map[string]string{},
	}
}

// decodeStructured interprets the line as a self-describing JSON object.
// Missing level/target/message default rather than fail; a missing or
// malformed timestamp defaults to now. Extra keys are stringified into
// Fields, non-string values via their JSON encoding.
func decodeStructured(line string) (LogEntry, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &obj); err != nil || obj == nil {
		// "null" unmarshals without error but is not an object.
		return LogEntry{}, false
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     "INFO",
		Target:    "unknown",
		Message:   "",
		Fields:    make(map[string]string),
	}

	if raw, ok := obj["timestamp"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				entry.Timestamp = ts.UTC()
			}
		}
	}
	if s, ok := stringKey(obj, "level"); ok {
		entry.Level = s
	}
	if s, ok := stringKey(obj, "target"); ok {
		entry.Target = s
	}
	if s, ok := stringKey(obj, "message"); ok {
		entry.Message = s
	}

	for key, raw := range obj {
		if reservedKeys[key] {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			entry.Fields[key] = s
		} else {
			entry.Fields[key] = string(raw)
		}
	}

	return entry, true
}

// decodeText matches the fixed positional text grammar. Fields stays empty.
func decodeText(line string) (LogEntry, bool) {
	m := textLineRe.FindStringSubmatch(line)
	if m == nil {
		return LogEntry{}, false
	}
	ts, err := time.Parse(time.RFC3339, m[1])
	if err != nil {
		return LogEntry{}, false
	}
	return LogEntry{
		Timestamp: ts.UTC(),
		Level:     m[2],
		Target:    m[3],
		Message:   m[4],
		Fields:    map[string]string{},
	}, true
}

func stringKey(obj map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
