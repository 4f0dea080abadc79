package logengine

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nockpoint/nockit/internal/utils/fileutil"
	"github.com/nockpoint/nockit/internal/utils/logger"
	nockerrors "github.com/nockpoint/nockit/pkg/errors"
)

// SearchOptions selects what to scan and how to match.
type SearchOptions struct {
	// Pattern is a line regex. Mutually exclusive with Expr.
	Pattern string
	// Expr is an expr-lang boolean program evaluated against each parsed
	// entry (Level, Target, Message, Fields, Timestamp).
	Expr string
	// File limits the scan to one explicit file instead of all of logDir.
	File string
}

// ExprEnv is the expression environment exposed to --expr programs.
type ExprEnv struct {
	Timestamp time.Time         `expr:"Timestamp"`
	Level     string            `expr:"Level"`
	Target    string            `expr:"Target"`
	Message   string            `expr:"Message"`
	Fields    map[string]string `expr:"Fields"`
}

type lineMatcher func(line string) bool

// SearchLogs scans one file or every log file for matching lines, writing
// "path:line: text" for each match and a grand total. Matcher compilation
// happens before any I/O so bad input never partially executes.
func SearchLogs(ctx context.Context, w io.Writer, logDir string, opts SearchOptions) error {
	match, err := compileMatcher(opts)
	if err != nil {
		return err
	}

	explicit := opts.File != ""
	var files []string
	if explicit {
		files = []string{opts.File}
	} else {
		files, err = FindLogFiles(logDir)
		if err != nil {
			return fmt.Errorf("locate log files in %s: %w", logDir, err)
		}
		if len(files) == 0 {
			fmt.Fprintf(w, "No log files found in %s\n", logDir)
			return nil
		}
	}

	totalMatches := 0
	for _, file := range files {
		fmt.Fprintf(w, "\n=== Searching %s ===\n", file)
		matches, err := searchFile(w, file, match)
		if err != nil {
			if explicit {
				return nockerrors.NewFileError(file, err)
			}
			// Multi-file scans isolate per-file failures.
			logger.Get(ctx).Warnf("Skipping unreadable file %s: %v", file, err)
			continue
		}
		totalMatches += matches
	}

	fmt.Fprintf(w, "\nTotal matches found: %d\n", totalMatches)
	return nil
}

// compileMatcher builds the line matcher from opts. Exactly one of Pattern
// and Expr must be set.
func compileMatcher(opts SearchOptions) (lineMatcher, error) {
	if opts.Pattern != "" && opts.Expr != "" {
		return nil, fmt.Errorf("%w: pattern and --expr are mutually exclusive", nockerrors.ErrInvalidPattern)
	}

	if opts.Expr != "" {
		program, err := expr.Compile(opts.Expr, expr.Env(ExprEnv{}), expr.AsBool())
		if err != nil {
			return nil, nockerrors.NewExprError(opts.Expr, err)
		}
		return exprMatcher(program), nil
	}

	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, nockerrors.NewPatternError(opts.Pattern, err)
	}
	return re.MatchString, nil
}

// exprMatcher parses each line and runs the compiled program over it. The
// parser is total, so free-text lines still get an UNKNOWN-level entry the
// expression can reject or accept.
func exprMatcher(program *vm.Program) lineMatcher {
	return func(line string) bool {
		entry := ParseLine(line)
		out, err := expr.Run(program, ExprEnv{
			Timestamp: entry.Timestamp,
			Level:     entry.Level,
			Target:    entry.Target,
			Message:   entry.Message,
			Fields:    entry.Fields,
		})
		if err != nil {
			return false
		}
		matched, ok := out.(bool)
		return ok && matched
	}
}

// searchFile reports every matching line with its 1-based line number, in
// ascending order.
func searchFile(w io.Writer, path string, match lineMatcher) (int, error) {
	lines, err := fileutil.ReadLines(path)
	if err != nil {
		return 0, err
	}

	matches := 0
	for i, line := range lines {
		if match(line) {
			fmt.Fprintf(w, "%s:%d: %s\n", path, i+1, line)
			matches++
		}
	}
	return matches, nil
}
