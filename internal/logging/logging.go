// Package logging builds the structured logger shared by the CLI and the
// analyzer.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
)

// ParseLevel maps a level name to a slog level. Unknown names are INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case DEBUG:
		return slog.LevelDebug
	case WARN, "WARNING":
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a text logger writing to dest, stderr when dest is nil.
func New(level string, dest io.Writer) *slog.Logger {
	return newLogger(level, dest, false)
}

// NewJSON creates a JSON logger writing to dest, stderr when dest is nil.
func NewJSON(level string, dest io.Writer) *slog.Logger {
	return newLogger(level, dest, true)
}

func newLogger(level string, dest io.Writer, json bool) *slog.Logger {
	if dest == nil {
		dest = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(dest, opts)
	} else {
		handler = slog.NewTextHandler(dest, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
