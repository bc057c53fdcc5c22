// Package xlog provides the structured-logging helper shared by every
// corenet package. It standardizes on logrus fields keyed by package and
// function, the way the teacher package wires its own per-call loggers.
package xlog

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger accumulates a set of structured fields for one call and emits
// them at whatever level the caller chooses.
type Logger struct {
	function string
	fields   logrus.Fields
}

// New returns a Logger scoped to pkg/function, pre-populated with those
// two fields.
func New(pkg, function string) *Logger {
	return &Logger{
		function: function,
		fields: logrus.Fields{
			"package":  pkg,
			"function": function,
		},
	}
}

// With returns a copy of l with an additional field set.
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return &Logger{function: l.function, fields: fields}
}

// WithError attaches an error and its operation context.
func (l *Logger) WithError(err error, operation string) *Logger {
	return l.With("error", err.Error()).With("operation", operation)
}

// Entry logs function entry at Debug.
func (l *Logger) Entry() {
	logrus.WithFields(l.fields).Debug(fmt.Sprintf("Function entry: %s", l.function))
}

// Exit logs function exit at Debug.
func (l *Logger) Exit() {
	logrus.WithFields(l.fields).Debug(fmt.Sprintf("Function exit: %s", l.function))
}

// Debug logs a debug-level message with the accumulated fields.
func (l *Logger) Debug(message string) { logrus.WithFields(l.fields).Debug(message) }

// Info logs an info-level message with the accumulated fields.
func (l *Logger) Info(message string) { logrus.WithFields(l.fields).Info(message) }

// Error logs an error-level message with the accumulated fields. This is
// the path the gossip acceptor uses for every rejected record (spec §4.7).
func (l *Logger) Error(message string) { logrus.WithFields(l.fields).Error(message) }

// KeyPreview renders the first bytes of a public key for log lines, so
// full key material never lands in the log sink.
func KeyPreview(key []byte) string {
	n := 8
	if len(key) < n {
		n = len(key)
	}
	preview := fmt.Sprintf("%x", key[:n])
	if len(key) > n {
		preview += "..."
	}
	return preview
}
