// Package logging builds the charmbracelet/log loggers memwatch uses.
//
// There are two kinds: the diagnostic logger, which must stay off the
// terminal while the panels own it and so writes to a file or nowhere,
// and the panel logger, which writes formatted records into the log
// panel through the Watcher's io.Writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const timeFormat = "15:04:05.000"

// New returns a diagnostic logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "memwatch",
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	}), nil
}

// Open returns a diagnostic logger appending to path. An empty path gives
// a logger that discards everything. The returned closer must be called
// when the logger is no longer used.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	if path == "" {
		logger, err := New(io.Discard, level)
		return logger, nopCloser{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// NewPanel returns a logger for the log panel. Timestamps are left to the
// panel itself.
func NewPanel(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level: log.DebugLevel,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
