// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New initializes a new slog logger and sets it as the default.
// LOG_FORMAT selects "text" (the default, for development) or "json", and
// LOG_LEVEL one of debug, info, warn or error (default debug).
func New() {
	NewTo(os.Stdout)
}

// NewTo is New writing to w, for commands whose stdout carries output.
func NewTo(w io.Writer) {
	slog.SetDefault(slog.New(NewHandler(w, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))))
}

// NewHandler builds the handler New installs, writing to w.
func NewHandler(w io.Writer, format, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	switch format {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		opts.AddSource = true
		return slog.NewTextHandler(w, opts)
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean debug.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
