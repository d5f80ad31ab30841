// Package log wraps log/slog with context-aware helpers. Attributes stored
// in the context with WithAttrs are appended to every record logged with
// that context, which is how the request id reaches service-level lines.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

type attrsKey struct{}

// WithAttrs returns a copy of ctx carrying attrs in addition to any
// attributes already stored in it.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	prev, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// Info logs msg and attrs with the given context at the info level.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, msg, attrs...)
}

// Warn logs msg and attrs with the given context at the warning level.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, msg, attrs...)
}

// Error logs msg and attrs with the given context at the error level.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, msg, attrs...)
}

// Err is a shorthand for the "error" attribute.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// emit builds the record by hand so the source attribute points at the
// caller of Info, Warn or Error rather than at this package.
func emit(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	logger := slog.Default()
	if !logger.Enabled(ctx, level) {
		return
	}

	rec := slog.NewRecord(time.Now(), level, msg, callerPC())
	if scoped, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok {
		rec.AddAttrs(scoped...)
	}
	rec.AddAttrs(attrs...)
	_ = logger.Handler().Handle(ctx, rec)
}

// callerPC must be called from emit, which is called from an exported
// level helper. Frames: Callers, callerPC, emit, helper, caller.
func callerPC() uintptr {
	pc := make([]uintptr, 1)
	if runtime.Callers(4, pc) == 0 {
		return 0
	}
	return pc[0]
}
