package logging

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger receives the binding's lifecycle and misuse records: scope and
// context creation and teardown, wrapper materialization, token misuse and
// diagnostics LLVM reports through a context's handler. Arguments are
// slog-style key/value pairs or slog.Attr values.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New routes binding records to logger, or to slog.Default() when logger is
// nil.
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return slogAdapter{l: logger}
}

type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Debug(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelDebug, msg, args...)
}

func (a slogAdapter) Info(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelInfo, msg, args...)
}

func (a slogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelWarn, msg, args...)
}

func (a slogAdapter) Error(ctx context.Context, msg string, args ...any) {
	a.l.Log(ctx, slog.LevelError, msg, args...)
}

func (a slogAdapter) With(args ...any) Logger {
	return slogAdapter{l: a.l.With(args...)}
}

// Nop drops every record. It is the default for scopes built without a
// logger.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                  { return n }

// Handle renders a native handle as a log attribute. The zero handle is
// logged as "null" so that invalid handles stand out in records.
func Handle(key string, ref uintptr) slog.Attr {
	if ref == 0 {
		return slog.String(key, "null")
	}
	return slog.String(key, fmt.Sprintf("%#x", ref))
}
