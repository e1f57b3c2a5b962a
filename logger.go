package pgmgo

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pgmgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithEpsilon adds the error-bound field to the logger.
func (l *Logger) WithEpsilon(epsilon int) *Logger {
	return &Logger{
		Logger: l.Logger.With("epsilon", epsilon),
	}
}

// WithLen adds a length field to the logger.
func (l *Logger) WithLen(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("len", n),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(n, epsilon, segments, height int, duration time.Duration) {
	l.Debug("index built",
		"len", n,
		"epsilon", epsilon,
		"segments", segments,
		"height", height,
		"duration", duration,
	)
}

// LogSetOp logs a set or multiset operation.
func (l *Logger) LogSetOp(op string, lenA, lenB, lenOut int, duration time.Duration) {
	l.Debug("set operation completed",
		"op", op,
		"len_a", lenA,
		"len_b", lenB,
		"len_out", lenOut,
		"duration", duration,
	)
}
