// Package logging defines a minimal structured-logging interface used across
// the service. The production implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	// Trace logs fine-grained diagnostics, normally filtered out.
	Trace(ctx context.Context, msg string, args ...any)

	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// Critical logs failures that leave the service unable to do its job.
	Critical(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Trace(context.Context, string, ...any)    {}
func (nopLogger) Debug(context.Context, string, ...any)    {}
func (nopLogger) Info(context.Context, string, ...any)     {}
func (nopLogger) Warn(context.Context, string, ...any)     {}
func (nopLogger) Error(context.Context, string, ...any)    {}
func (nopLogger) Critical(context.Context, string, ...any) {}
func (n nopLogger) With(...any) Logger                     { return n }
