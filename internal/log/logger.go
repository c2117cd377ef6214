// Package log provides the shared structured logger for the sqlet
// command line tools.
package log

import (
	"io"
	"log/slog"
)

// Logger is a structured logger on top of slog.Logger that logs in JSON
// format. The zero value is not usable; construct one with NewLogger.
type Logger struct {
	slogger   *slog.Logger
	namespace string
}

// NewLogger creates a new Logger that writes info-level and above to the
// given writer.
func NewLogger(writer io.Writer) Logger {
	return NewLoggerWithLevel(writer, slog.LevelInfo)
}

// NewLoggerWithLevel creates a new Logger with an explicit minimum
// level; the tools pass slog.LevelDebug for their verbose modes.
func NewLoggerWithLevel(writer io.Writer, level slog.Level) Logger {
	slogger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	return Logger{slogger: slogger}
}

// WithNs returns a copy of the logger that includes the namespace as the
// first attribute of every record, to differentiate logs from different
// parts of a tool.
func (l Logger) WithNs(namespace string) Logger {
	l.namespace = namespace
	return l
}

// IsInitialized reports whether the logger was built by a constructor.
func (l Logger) IsInitialized() bool {
	return l.slogger != nil
}

// Debug logs a structured debug message with optional key-value maps.
func (l Logger) Debug(msg string, keyVals ...KV) {
	l.slogger.Debug(msg, l.args(keyVals...)...)
}

// Info logs a structured info message with optional key-value maps.
func (l Logger) Info(msg string, keyVals ...KV) {
	l.slogger.Info(msg, l.args(keyVals...)...)
}

// Warn logs a structured warning message with optional key-value maps.
func (l Logger) Warn(msg string, keyVals ...KV) {
	l.slogger.Warn(msg, l.args(keyVals...)...)
}

// Error logs a structured error message with optional key-value maps.
func (l Logger) Error(msg string, keyVals ...KV) {
	l.slogger.Error(msg, l.args(keyVals...)...)
}

func (l Logger) args(keyVals ...KV) []any {
	if l.namespace == "" {
		return kvToArgs(keyVals...)
	}
	return append([]any{"ns", l.namespace}, kvToArgs(keyVals...)...)
}
