package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface passed between components.
type Logger = logrus.FieldLogger

// DefaultLogger is used when the context carries no logger.
var DefaultLogger = logrus.NewEntry(logrus.StandardLogger())

type ctxKey struct{}

// WithLogger returns a copy of ctx carrying the entry.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the entry stored in ctx or DefaultLogger.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return DefaultLogger
	}
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok && entry != nil {
		return entry
	}
	return DefaultLogger
}

// Setup configures the standard logger and returns its root entry.
func Setup(level string, json bool) *logrus.Entry {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stderr)
	if json {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	DefaultLogger = logrus.NewEntry(log)
	return DefaultLogger
}
