package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
)

type contextKey struct{}

var (
	loggerKey       = contextKey{}
	defaultLogger   *slog.Logger
	defaultLoggerMu sync.RWMutex
)

// Format selects the handler that renders log records
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

var ErrInvalidLevel = goerr.New("invalid log level")

func init() {
	defaultLogger = New("info", os.Stdout)
}

// ParseLevel converts "debug", "info", "warn", "warning" or "error" (case-insensitive)
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, goerr.Wrap(ErrInvalidLevel, "unknown level", goerr.V("level", level))
	}
}

// New creates a console logger. An unknown level falls back to info.
func New(level string, w io.Writer) *slog.Logger {
	return NewWithFormat(level, FormatConsole, w)
}

// NewWithFormat creates a logger writing either colored console lines or JSON
func NewWithFormat(level string, format Format, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	lv, err := ParseLevel(level)
	if err != nil {
		Default().Warn("invalid log level, fallback to info", "level", level)
	}

	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv}))
	}

	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(lv),
		clog.WithTimeFmt("15:04:05"),
		clog.WithSource(false),
		clog.WithAttrHook(clog.GoerrHook),
	)

	return slog.New(handler)
}

// Default returns the default logger
func Default() *slog.Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(logger *slog.Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}

// With returns a new context with the logger attached
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// From retrieves the logger from the context, or the default logger
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
