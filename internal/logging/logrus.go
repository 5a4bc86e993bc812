// Package logging adapts logrus to the fofa.Logger interface.
package logging

import (
	"io"

	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/sirupsen/logrus"
)

// Logger implements fofa.Logger on top of a logrus logger.
type Logger struct {
	entry *logrus.Entry
}

var _ fofa.Logger = (*Logger)(nil)

// New returns a text logger writing to out. verbose selects debug level,
// otherwise only warnings and errors are emitted.
func New(out io.Writer, verbose bool) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !verbose,
		FullTimestamp:    true,
	})

	base.SetLevel(logrus.WarnLevel)
	if verbose {
		base.SetLevel(logrus.DebugLevel)
	}

	return &Logger{entry: logrus.NewEntry(base)}
}

// Wrap adapts an existing logrus entry.
func Wrap(entry *logrus.Entry) *Logger {
	return &Logger{entry: entry}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}
