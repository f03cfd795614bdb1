package buffer

import "github.com/kopia/okio-sub006/iotimeout"

// BufferedSink decorates a Sink with an internal Buffer, batching
// small writes and only pushing complete segments downstream:
// accumulate into a buffer and flush whole chunks to the backing
// store rather than writing every call through.
type BufferedSink struct {
	downstream Sink
	buf        *Buffer
	closed     bool
}

// NewBufferedSink wraps dst.
func NewBufferedSink(dst Sink) *BufferedSink {
	return &BufferedSink{downstream: dst, buf: New()}
}

// Buffer exposes the internal buffer for decorators that need direct
// access.
func (s *BufferedSink) Buffer() *Buffer { return s.buf }

// Timeout returns the downstream sink's timeout.
func (s *BufferedSink) Timeout() *iotimeout.Timeout { return s.downstream.Timeout() }

// WriteBytes appends p to the internal buffer.
func (s *BufferedSink) WriteBytes(p []byte) *BufferedSink {
	s.buf.WriteBytes(p)
	return s
}

// WriteByte appends one byte.
func (s *BufferedSink) WriteByte(v byte) *BufferedSink {
	s.buf.WriteByte(v)
	return s
}

// WriteShort appends a big-endian int16.
func (s *BufferedSink) WriteShort(v int16) *BufferedSink {
	s.buf.WriteShort(v)
	return s
}

// WriteInt appends a big-endian int32.
func (s *BufferedSink) WriteInt(v int32) *BufferedSink {
	s.buf.WriteInt(v)
	return s
}

// WriteLong appends a big-endian int64.
func (s *BufferedSink) WriteLong(v int64) *BufferedSink {
	s.buf.WriteLong(v)
	return s
}

// WriteUtf8 appends the UTF-8 bytes of str.
func (s *BufferedSink) WriteUtf8(str string) *BufferedSink {
	s.buf.WriteUtf8(str)
	return s
}

// Write moves byteCount bytes from source into the internal buffer,
// satisfying the Sink interface so a BufferedSink can itself be
// wrapped or substituted wherever a Sink is expected.
func (s *BufferedSink) Write(source *Buffer, byteCount int64) error {
	return s.buf.Write(source, byteCount)
}

// EmitCompleteSegments pushes every full segment of the internal
// buffer downstream, retaining only the trailing partial segment (if
// any) for more appending.
func (s *BufferedSink) EmitCompleteSegments() error {
	complete := s.buf.Size()
	if tail := s.buf.tail(); tail != nil && tail.Cap() > 0 {
		complete -= int64(tail.Len())
	}
	if complete <= 0 {
		return nil
	}
	return s.downstream.Write(s.buf, complete)
}

// Emit pushes every buffered byte downstream, including a partial
// tail segment.
func (s *BufferedSink) Emit() error {
	if s.buf.Size() == 0 {
		return nil
	}
	return s.downstream.Write(s.buf, s.buf.Size())
}

// Flush pushes all buffered bytes downstream, then flushes the
// downstream sink.
func (s *BufferedSink) Flush() error {
	if err := s.Emit(); err != nil {
		return err
	}
	return s.downstream.Flush()
}

// Close emits any remaining buffered bytes and closes the downstream
// sink. A second Close is a no-op.
func (s *BufferedSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.Emit(); err != nil {
		return err
	}
	return s.downstream.Close()
}
