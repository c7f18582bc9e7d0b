// Package log provides the logging interface used throughout the
// emulator, backed by logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields = map[string]interface{}

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(str string)

	// WithFields returns a Logger that attaches fields to every entry.
	WithFields(fields Fields) Logger
}

type logger struct {
	entry *logrus.Entry
}

// Opt configures the logrus instance behind a Logger.
type Opt func(l *logrus.Logger)

// WithLevel sets the minimum level that is logged.
func WithLevel(level logrus.Level) Opt {
	return func(l *logrus.Logger) {
		l.SetLevel(level)
	}
}

// WithJSON switches the output to one JSON object per line.
func WithJSON() Opt {
	return func(l *logrus.Logger) {
		l.Formatter = &logrus.JSONFormatter{DisableTimestamp: true}
	}
}

// WithOutput redirects the log output.
func WithOutput(w io.Writer) Opt {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// New returns a Logger writing human-readable text at info level.
func New(opts ...Opt) Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	for _, opt := range opts {
		opt(l)
	}

	return &logger{entry: logrus.NewEntry(l)}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logger) Fatal(str string) {
	l.entry.Fatal(str)
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}
