// Package clog adapts go.uber.org/zap for the css package's internal
// diagnostic tracing, the way rupor-github-fb2cng/css.Parser takes an
// optional *zap.Logger: nil-safe, defaulting to a no-op logger, named
// per component so a caller that does wire up a real zap.Logger can
// filter by subsystem.
package clog

import "go.uber.org/zap"

// Logger is a thin, nil-safe wrapper around *zap.Logger.
type Logger struct {
	z *zap.Logger
}

// New wraps z, defaulting to a no-op logger when z is nil.
func New(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z}
}

// Named returns a child logger scoped to name.
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return New(nil).Named(name)
	}
	return &Logger{z: l.z.Named(name)}
}

// Debug logs a debug-level trace message with structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

// Warn logs a warn-level message with structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Warn(msg, fields...)
}
