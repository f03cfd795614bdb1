// Package buffer implements the segmented in-memory byte queue at the
// heart of this module (Buffer) together with the Source/Sink
// streaming contracts and their BufferedSource/BufferedSink
// decorators, following the chunk-walking read/write loop shape of a
// content-addressed object reader/writer.
package buffer

import "github.com/kopia/okio-sub006/iotimeout"

// Source is the narrowest read contract in this module: pull up to
// byteCount bytes from the stream into sink, returning the number
// moved, or -1 at end of stream.
type Source interface {
	Read(sink *Buffer, byteCount int64) (int64, error)
	Timeout() *iotimeout.Timeout
	Close() error
}

// Sink is the narrowest write contract: push byteCount bytes from
// source into the stream.
type Sink interface {
	Write(source *Buffer, byteCount int64) error
	Flush() error
	Timeout() *iotimeout.Timeout
	Close() error
}
