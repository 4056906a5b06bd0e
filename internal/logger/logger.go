// Package logger builds the structured logger used by the driver
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/jzx17/wakeworker/internal/config"
)

// ParseLevel maps a config level name to a slog level; unknown names mean info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a text or JSON logger writing to out
func New(cfg config.LogConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}
