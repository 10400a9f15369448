package logging

import (
	"log/slog"
	"os"
	"strings"
)

// appName groups api and worker log lines from one deployment.
const appName = "catalog-enricher"

// NewJSONLogger builds the process-wide JSON logger. service distinguishes
// the api and worker binaries inside a shared log stream.
func NewJSONLogger(service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler).With("app", appName, "service", service)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
