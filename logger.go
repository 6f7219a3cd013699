package driftgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with driftgo-specific context.
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

// WithWord adds a target-word field to the logger.
func (l *Logger) WithWord(word string) *Logger {
	return &Logger{
		Logger: l.Logger.With("word", word),
	}
}

// WithDim adds a dimensionality field to the logger.
func (l *Logger) WithDim(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dim", dim),
	}
}

// LogSkip logs a word skipped by a data-quality guard.
func (l *Logger) LogSkip(ctx context.Context, word string, reason error) {
	l.DebugContext(ctx, "word skipped",
		"word", word,
		"reason", reason,
	)
}

// LogScore logs one computed score column.
func (l *Logger) LogScore(ctx context.Context, word, column string, value float64) {
	l.DebugContext(ctx, "score computed",
		"word", word,
		"column", column,
		"value", value,
	)
}

// LogSelection logs a model-selection outcome.
func (l *Logger) LogSelection(ctx context.Context, word string, model string, k int, silhouette float64) {
	l.DebugContext(ctx, "clustering selected",
		"word", word,
		"model", model,
		"k", k,
		"silhouette", silhouette,
	)
}

// LogFailure logs a per-word contract violation.
func (l *Logger) LogFailure(ctx context.Context, word string, err error) {
	l.ErrorContext(ctx, "word failed",
		"word", word,
		"error", err,
	)
}

// LogTable logs the completion of a scoring operation.
func (l *Logger) LogTable(ctx context.Context, op string, scored, skipped, failed int) {
	l.InfoContext(ctx, "scoring completed",
		"op", op,
		"scored", scored,
		"skipped", skipped,
		"failed", failed,
	)
}
