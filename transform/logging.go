package transform

import (
	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/iolog"
)

// LoggingSource wraps a Source and logs every Read call's requested
// and actual byte counts, the way blob.loggingStorage.GetBlock logs
// each call's result.
type LoggingSource struct {
	ForwardingSource
	log *iolog.Logger
}

// NewLoggingSource wraps src, logging under name.
func NewLoggingSource(src buffer.Source, name string) *LoggingSource {
	return &LoggingSource{ForwardingSource: ForwardingSource{Inner: src}, log: iolog.New(name)}
}

func (l *LoggingSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	n, err := l.Inner.Read(sink, byteCount)
	if err != nil {
		l.log.Warningf("read(%d)=(%d, %v)", byteCount, n, err)
	} else {
		l.log.Debugf("read(%d)=(%d, <nil>)", byteCount, n)
	}
	return n, err
}

// LoggingSink wraps a Sink and logs every Write/Flush/Close call.
type LoggingSink struct {
	ForwardingSink
	log *iolog.Logger
}

// NewLoggingSink wraps dst, logging under name.
func NewLoggingSink(dst buffer.Sink, name string) *LoggingSink {
	return &LoggingSink{ForwardingSink: ForwardingSink{Inner: dst}, log: iolog.New(name)}
}

func (l *LoggingSink) Write(source *buffer.Buffer, byteCount int64) error {
	err := l.Inner.Write(source, byteCount)
	if err != nil {
		l.log.Warningf("write(%d)=%v", byteCount, err)
	} else {
		l.log.Debugf("write(%d)=<nil>", byteCount)
	}
	return err
}

func (l *LoggingSink) Flush() error {
	err := l.Inner.Flush()
	l.log.Debugf("flush()=%v", err)
	return err
}

func (l *LoggingSink) Close() error {
	err := l.Inner.Close()
	l.log.Debugf("close()=%v", err)
	return err
}
