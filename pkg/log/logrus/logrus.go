// Package logrus provides a logrus-backed implementation of the library's
// [log.Logger] interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/go-drift/viewstate/pkg/log"
)

type logger struct {
	entry *logrus.Entry
}

// NewLogrus returns a [log.Logger] backed by the given logrus entry.
func NewLogrus(entry *logrus.Entry) log.Logger {
	return logger{entry: entry}
}

func (l logger) Debugf(format string, args ...any)   { l.entry.Debugf(format, args...) }
func (l logger) Infof(format string, args ...any)    { l.entry.Infof(format, args...) }
func (l logger) Warningf(format string, args ...any) { l.entry.Warningf(format, args...) }
func (l logger) Errorf(format string, args ...any)   { l.entry.Errorf(format, args...) }

func (l logger) WithValues(values log.Kv) log.Logger {
	return logger{entry: l.entry.WithFields(logrus.Fields(values))}
}
