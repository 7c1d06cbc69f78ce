// Package log provides the logging interface for the viewstate library.
//
// The library accepts any implementation of [Logger]. Use [Noop] to
// disable logging (this is the default when no logger is configured).
//
// To integrate with your application's logger, implement the [Logger]
// interface, or use the ready-made logrus adapter in
// [github.com/go-drift/viewstate/pkg/log/logrus].
package log

// Kv is a helper type for structured logging key-value pairs.
type Kv = map[string]any

// Logger is the interface that loggers must implement for the library.
//
// It supports structured logging through [Kv] values. For most use cases,
// only the format methods (Debugf, Infof, Warningf, Errorf) need
// meaningful implementations.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)

	// WithValues returns a logger that includes the given key-value pairs
	// on every line it emits.
	WithValues(values Kv) Logger
}

// Noop is a logger that discards all log output. This is the default
// logger when none is configured on a controller.
var Noop Logger = noop{}

type noop struct{}

func (noop) Debugf(string, ...any)   {}
func (noop) Infof(string, ...any)    {}
func (noop) Warningf(string, ...any) {}
func (noop) Errorf(string, ...any)   {}

func (n noop) WithValues(Kv) Logger { return n }
