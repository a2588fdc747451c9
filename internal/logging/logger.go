// Package logging sets up the per-run log: one timestamped file per run plus console output
// mirroring it at the configured level.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileTimestampLayout = "2006-01-02_150405"

// Options describes how the run log is created.
type Options struct {
	Dir          string    // directory for the log file, created when missing
	Prefix       string    // file name prefix identifying the tool
	ConsoleLevel string    // debug, info, warn or error
	FileLevel    string    // defaults to debug
	Console      io.Writer // defaults to os.Stdout
	Now          func() time.Time
}

// RunLog is an open run log.
type RunLog struct {
	Logger *slog.Logger
	Path   string
	file   *os.File
}

// FileName returns the log file name for a run started at t.
func FileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.log", prefix, t.Format(fileTimestampLayout))
}

// Open creates the log file and returns a logger writing to both it and the console.
func Open(opts Options) (*RunLog, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	path := filepath.Join(dir, FileName(opts.Prefix, now()))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	fileLevel := opts.FileLevel
	if fileLevel == "" {
		fileLevel = "debug"
	}

	handler := newFanoutHandler(
		newTextHandler(console, ParseLevel(opts.ConsoleLevel)),
		newTextHandler(file, ParseLevel(fileLevel)),
	)

	return &RunLog{Logger: slog.New(handler), Path: path, file: file}, nil
}

// Close flushes and closes the log file.
func (r *RunLog) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	if err := r.file.Sync(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// New returns a console-only logger, used by commands that do not produce a run log.
func New(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(newTextHandler(w, ParseLevel(level)))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
