// Package logging configures the process-wide slog logger and the HTTP
// access log.
package logging

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/go-chi/chi/v5/middleware"
)

// New builds a logger writing to w in the configured format and level.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name onto slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
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

// RequestLogger returns chi access-log middleware backed by logger.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&formatter{logger: logger})
}

type formatter struct {
	logger *slog.Logger
}

func (f *formatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &entry{
		logger: f.logger.With(
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		),
	}
}

type entry struct {
	logger *slog.Logger
}

func (e *entry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra any) {
	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	e.logger.Log(context.Background(), level, "request",
		"status", status,
		"bytes", bytes,
		"elapsed", elapsed,
	)
}

func (e *entry) Panic(v any, stack []byte) {
	e.logger.Error("panic", "panic", v, "stack", string(stack))
}
