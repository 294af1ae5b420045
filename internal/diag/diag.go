// Package diag provides a thin, nil-safe structured logging wrapper shared
// by the builder and packer packages. It exists so that none of
// those packages need to special-case a caller that passes no logger.
package diag

import "go.uber.org/zap"

// Logger wraps a *zap.Logger so callers may pass nil and still get a
// working, silent logger.
type Logger struct {
	z *zap.Logger
}

// New wraps z. A nil z is replaced with a no-op logger.
func New(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z}
}

// Nop returns a logger that discards everything, the default when a
// package is constructed without an explicit logger.
func Nop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Debug logs construction-internal detail: register hits/misses, slot
// placement attempts. Off by default in production configurations.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.z.Debug(msg, fields...)
}

// Info logs milestones: Finalize, BuildFSA and Pack completing.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.z.Info(msg, fields...)
}

// Warn logs recoverable anomalies, e.g. a near-full bitset growth.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.z.Warn(msg, fields...)
}

// With returns a logger with the given structured fields attached to
// every subsequent call.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}
