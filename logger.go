package tcamoi

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with tcamoi-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", name),
	}
}

// WithCount adds a filter count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("filters", count),
	}
}

// LogSelect logs a completed stay/discard selection. Strategy and filter
// count come from WithStrategy and WithCount.
func (l *Logger) LogSelect(mode Mode, bits, stay, discard int) {
	l.Debug("selection completed",
		"mode", mode.String(),
		"bits", bits,
		"stay", stay,
		"discard", discard,
	)
}

// LogBits logs a completed bit selection.
func (l *Logger) LogBits(bits, pairs int) {
	l.Debug("bit selection completed",
		"bits", bits,
		"indistinguishable_pairs", pairs,
	)
}

// LogSubset logs a completed maximal subset search.
func (l *Logger) LogSubset(kept int) {
	l.Debug("subset search completed",
		"kept", kept,
	)
}

// LogGroups logs a completed group minimisation.
func (l *Logger) LogGroups(groups, residual int) {
	l.Debug("group minimisation completed",
		"groups", groups,
		"residual", residual,
	)
}
