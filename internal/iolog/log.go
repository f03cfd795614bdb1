// Package iolog provides the package-level structured logger used
// across this module, following a `log = Logger("pkgname")`
// package-variable convention.
package iolog

import (
	"log"
	"os"
)

// Sink is the minimal logging surface this module depends on. Callers
// may supply their own (e.g. a zap-backed one via NewZapSink) in place
// of the stdlib-backed default.
type Sink interface {
	Debugf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// stdSink is the zero-dependency default, active until a caller opts
// into something richer.
type stdSink struct {
	debug *log.Logger
	warn  *log.Logger
}

func (s *stdSink) Debugf(format string, args ...interface{}) {
	s.debug.Printf(format, args...)
}

func (s *stdSink) Warningf(format string, args ...interface{}) {
	s.warn.Printf(format, args...)
}

func newStdSink(name string) *stdSink {
	return &stdSink{
		debug: log.New(os.Stderr, "DEBUG ["+name+"] ", log.LstdFlags),
		warn:  log.New(os.Stderr, "WARN  ["+name+"] ", log.LstdFlags),
	}
}

// Logger is a named logger bound to a Sink, swappable at runtime via
// SetSink — meant to be held in a package-level `log` variable that
// every file in a package shares.
type Logger struct {
	name string
	sink Sink
}

// New returns a Logger named name, backed by the default stdlib sink.
func New(name string) *Logger {
	return &Logger{name: name, sink: newStdSink(name)}
}

// SetSink swaps the logger's backing Sink, e.g. to NewZapSink(...).
func (l *Logger) SetSink(s Sink) {
	if s != nil {
		l.sink = s
	}
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.sink.Debugf(format, args...)
}

// Warningf logs at warning level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.sink.Warningf(format, args...)
}
