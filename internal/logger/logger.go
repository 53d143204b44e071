package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// New builds the process logger: a colorized tint handler when stderr is a
// terminal, the plain slog text handler otherwise.
func New(level slog.Level) *slog.Logger {
	var h slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		h = tint.NewHandler(os.Stderr, &tint.Options{Level: level})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
