// Package logrusadapter adapts a *logrus.Logger to the logging.Logger
// interface, so callers already standardized on logrus can plug it
// straight into the executor.
package logrusadapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/aws/aws-request-core/logging"
)

// Logger wraps a logrus.FieldLogger, mapping logging.Classification onto
// logrus's Warn/Debug levels.
type Logger struct {
	entry logrus.FieldLogger
}

// New returns a Logger backed by l.
func New(l logrus.FieldLogger) *Logger {
	return &Logger{entry: l}
}

// Logf implements logging.Logger.
func (l *Logger) Logf(classification logging.Classification, format string, v ...interface{}) {
	switch classification {
	case logging.Debug:
		l.entry.Debugf(format, v...)
	case logging.Warn:
		l.entry.Warnf(format, v...)
	default:
		l.entry.Infof(format, v...)
	}
}

// WithContext implements logging.ContextLogger, attaching ctx to the
// underlying logrus entry via logrus's own context plumbing so hooks can
// extract request-scoped fields (trace IDs, request IDs) from it.
func (l *Logger) WithContext(ctx context.Context) logging.Logger {
	if entry, ok := l.entry.(*logrus.Entry); ok {
		return &Logger{entry: entry.WithContext(ctx)}
	}
	if lg, ok := l.entry.(*logrus.Logger); ok {
		return &Logger{entry: lg.WithContext(ctx)}
	}
	return l
}
