package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPattern    = errors.New("invalid search pattern")
	ErrInvalidExpr       = errors.New("invalid filter expression")
	ErrInvalidPeriod     = errors.New("invalid time period")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidFilePath   = errors.New("invalid file path")
	ErrFileNotFound      = errors.New("file not found")
	ErrFileUnreadable    = errors.New("file unreadable")
	ErrOutputNotWritable = errors.New("output path not writable")
	ErrConfigNotFound    = errors.New("config not found")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrNoLogFiles        = errors.New("no log files found")
)

func NewPatternError(pattern string, reason error) error {
	return fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, reason)
}

func NewExprError(src string, reason error) error {
	return fmt.Errorf("%w: %q: %v", ErrInvalidExpr, src, reason)
}

func NewPeriodError(period string) error {
	return fmt.Errorf("%w: %q (use 1h, 6h, 12h, 1d, 1w, or 1m)", ErrInvalidPeriod, period)
}

func NewFormatError(format string) error {
	return fmt.Errorf("%w: %q (use json, csv, or txt)", ErrUnsupportedFormat, format)
}

func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, reason)
}

func NewOutputError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrOutputNotWritable, path, reason)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}
