// Package logger provides structured logging for hdrcomp.
//
// Completion output goes to stdout, so everything logged here goes to stderr
// unless a different writer is given.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level, or an unknown one, is configured.
const DefaultLevel = "warn"

// Logger wraps logrus logger
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry accumulates fields until Msg is called
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a new logger instance
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log, fields: logrus.Fields{}}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New("panic", io.Discard)
}

// ParseLevel maps a level name to a logrus level, falling back to DefaultLevel.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl, _ = logrus.ParseLevel(DefaultLevel)
	}
	return lvl
}

// With returns a child logger that tags every entry with component=name
func (l *Logger) With(component string) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["component"] = component
	return &Logger{log: l.log, fields: fields}
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level logrus.Level) bool {
	return l.log.IsLevelEnabled(level)
}

func (l *Logger) newEntry(level logrus.Level) *Entry {
	return &Entry{entry: l.log.WithFields(l.fields), level: level}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry { return l.newEntry(logrus.DebugLevel) }

// Info starts an info entry
func (l *Logger) Info() *Entry { return l.newEntry(logrus.InfoLevel) }

// Warn starts a warning entry
func (l *Logger) Warn() *Entry { return l.newEntry(logrus.WarnLevel) }

// Error starts an error entry
func (l *Logger) Error() *Entry { return l.newEntry(logrus.ErrorLevel) }

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Strs adds a string slice field, joined for the text formatter
func (e *Entry) Strs(key string, values []string) *Entry {
	e.entry = e.entry.WithField(key, strings.Join(values, ","))
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	e.entry = e.entry.WithField(key, float64(duration.Microseconds())/1000.0)
	return e
}

// Msg writes the entry with its accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
