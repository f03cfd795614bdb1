package iolog

import "go.uber.org/zap"

// zapSink adapts a *zap.SugaredLogger to the Sink interface, letting
// callers who already run zap route this module's logging through it
// instead of the stdlib default.
type zapSink struct {
	l *zap.SugaredLogger
}

// NewZapSink wraps l as a Sink.
func NewZapSink(l *zap.SugaredLogger) Sink {
	return &zapSink{l: l}
}

func (z *zapSink) Debugf(format string, args ...interface{}) {
	z.l.Debugf(format, args...)
}

func (z *zapSink) Warningf(format string, args ...interface{}) {
	z.l.Warnf(format, args...)
}
