package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is for per-row detail, below debug.
const LevelTrace = slog.Level(-8)

// ParseLevel accepts the slog level names plus "trace".
func ParseLevel(s string) (slog.Level, error) {
	if strings.ToLower(s) == "trace" {
		return LevelTrace, nil
	}

	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

// New creates a logger writing to w in the given format ("text" or "json").
func New(w io.Writer, minLevel slog.Level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{
		Level:     minLevel,
		AddSource: minLevel <= slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	return slog.New(handler), nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Trace logs a message at trace level.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}
