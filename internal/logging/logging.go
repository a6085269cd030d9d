package logging

import (
	"io"
	"log/slog"
)

// Verbose indicates whether debug-level logging is enabled.
var Verbose bool

var logger = slog.Default()

// Setup configures the debug logger. When verbose is true, debug-level
// records are emitted; jsonOutput switches the handler to JSON encoding.
// Output is written to w (os.Stderr in production, a buffer in tests).
func Setup(verbose, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger = slog.New(handler)
}

// Debug logs a debug-level message with structured attributes.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info-level message with structured attributes.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning-level message with structured attributes.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error-level message with structured attributes.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// With returns a logger with the given attributes attached to every record.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}
