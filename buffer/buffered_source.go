package buffer

import (
	"github.com/kopia/okio-sub006/bytestring"
	"github.com/kopia/okio-sub006/internal/ioerr"
	"github.com/kopia/okio-sub006/iotimeout"
	"github.com/kopia/okio-sub006/options"
)

// BufferedSource decorates a Source with an internal Buffer, pulling
// from upstream in segment-sized chunks and serving reads from the
// buffer: refill the current chunk only when the caller's request
// outruns what is already staged.
type BufferedSource struct {
	upstream Source
	buf      *Buffer
	closed   bool
}

// NewBufferedSource wraps src.
func NewBufferedSource(src Source) *BufferedSource {
	return &BufferedSource{upstream: src, buf: New()}
}

// Buffer exposes the internal buffer for decorators that need direct
// access (e.g. transform.Peek).
func (s *BufferedSource) Buffer() *Buffer { return s.buf }

// Timeout returns the upstream source's timeout.
func (s *BufferedSource) Timeout() *iotimeout.Timeout { return s.upstream.Timeout() }

// Close closes the upstream source. A second Close is a no-op.
func (s *BufferedSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.upstream.Close()
}

// fill pulls one more chunk from upstream into buf, returning false
// at end of stream.
func (s *BufferedSource) fill() (bool, error) {
	n, err := s.upstream.Read(s.buf, bufferedReadChunk)
	if err != nil {
		return false, err
	}
	return n >= 0, nil
}

const bufferedReadChunk = 8192

// Require ensures at least byteCount bytes are buffered, reading from
// upstream as needed, or returns ErrEndOfInput if the stream is
// exhausted first.
func (s *BufferedSource) Require(byteCount int64) error {
	ok, err := s.Request(byteCount)
	if err != nil {
		return err
	}
	if !ok {
		return ioerr.ErrEndOfInput
	}
	return nil
}

// Request is like Require but reports false instead of erroring when
// the stream runs out before byteCount bytes are available.
func (s *BufferedSource) Request(byteCount int64) (bool, error) {
	for s.buf.Size() < byteCount {
		more, err := s.fill()
		if err != nil {
			return false, err
		}
		if !more {
			return false, nil
		}
	}
	return true, nil
}

// ReadByte consumes and returns one byte.
func (s *BufferedSource) ReadByte() (byte, error) {
	if err := s.Require(1); err != nil {
		return 0, err
	}
	return s.buf.ReadByte()
}

// ReadShort consumes a big-endian int16.
func (s *BufferedSource) ReadShort() (int16, error) {
	if err := s.Require(2); err != nil {
		return 0, err
	}
	return s.buf.ReadShort()
}

// ReadInt consumes a big-endian int32.
func (s *BufferedSource) ReadInt() (int32, error) {
	if err := s.Require(4); err != nil {
		return 0, err
	}
	return s.buf.ReadInt()
}

// ReadLong consumes a big-endian int64.
func (s *BufferedSource) ReadLong() (int64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadLong()
}

// ReadByteArray consumes byteCount bytes, pulling from upstream as
// needed.
func (s *BufferedSource) ReadByteArray(byteCount int64) ([]byte, error) {
	if err := s.Require(byteCount); err != nil {
		return nil, err
	}
	return s.buf.ReadByteArray(byteCount)
}

// ReadAll drains upstream entirely and returns the remaining bytes.
func (s *BufferedSource) ReadAll() ([]byte, error) {
	for {
		more, err := s.fill()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	return s.buf.ReadByteArray(s.buf.Size())
}

// ReadUtf8Line reads through the next line terminator, pulling from
// upstream until one is found or the stream ends.
func (s *BufferedSource) ReadUtf8Line() (string, bool, error) {
	for {
		if idx := s.buf.IndexOfByte('\n', 0); idx >= 0 {
			return s.buf.ReadUtf8Line()
		}
		more, err := s.fill()
		if err != nil {
			return "", false, err
		}
		if !more {
			return s.buf.ReadUtf8Line()
		}
	}
}

// ReadUtf8LineStrict reads through the next line terminator within
// limit+1 bytes, raising ErrEndOfInput if none is found.
func (s *BufferedSource) ReadUtf8LineStrict(limit int64) (string, error) {
	for s.buf.IndexOfByte('\n', 0) < 0 && s.buf.Size() < limit+1 {
		more, err := s.fill()
		if err != nil {
			return "", err
		}
		if !more {
			break
		}
	}
	return s.buf.ReadUtf8LineStrict(limit)
}

// Select matches the lowest-indexed candidate in o that is a prefix
// of upstream, pulling more data only while the currently buffered
// bytes are still ambiguous (the trie walk could still extend to a
// longer candidate), then returns the matching index or -1.
func (s *BufferedSource) Select(o *options.Options) (int64, error) {
	for {
		result, consumed, needMore := options.Probe(s.buf, o)
		if !needMore {
			if result == -1 {
				return -1, nil
			}
			s.buf.Skip(consumed)
			return result, nil
		}
		more, err := s.fill()
		if err != nil {
			return -1, err
		}
		if !more {
			result, consumed, _ = options.Probe(s.buf, o)
			if result == -1 {
				return -1, nil
			}
			s.buf.Skip(consumed)
			return result, nil
		}
	}
}

// IndexOf scans upstream for target, pulling more data as needed, up
// to a caller-supplied byte budget, to avoid buffering an unbounded
// stream searching for an absent target.
func (s *BufferedSource) IndexOf(target bytestring.ByteString, from, maxScan int64) (int64, error) {
	for {
		if idx := s.buf.IndexOf(target, from); idx >= 0 {
			return idx, nil
		}
		if s.buf.Size() >= maxScan {
			return -1, nil
		}
		more, err := s.fill()
		if err != nil {
			return -1, err
		}
		if !more {
			return -1, nil
		}
	}
}

// Peek returns a BufferedSource over the bytes already staged plus
// whatever upstream still has, without consuming this source's
// position: reads against the peek view pull through a shared
// upstream but are mirrored back into this source's buffer so a
// later real read sees the same bytes again.
func (s *BufferedSource) Peek() *BufferedSource {
	return &BufferedSource{upstream: &peekForwarder{owner: s}, buf: New()}
}

// peekForwarder reads from owner's buffer/upstream without consuming
// the owner's logical position: consumed bytes are copied back.
type peekForwarder struct {
	owner *BufferedSource
	pos   int64
}

func (p *peekForwarder) Timeout() *iotimeout.Timeout { return p.owner.Timeout() }
func (p *peekForwarder) Close() error                { return nil }

func (p *peekForwarder) Read(sink *Buffer, byteCount int64) (int64, error) {
	if err := p.owner.Require(p.pos + byteCount); err != nil {
		if err != ioerr.ErrEndOfInput {
			return 0, err
		}
	}
	available := p.owner.buf.Size() - p.pos
	if available <= 0 {
		return -1, nil
	}
	if available < byteCount {
		byteCount = available
	}
	for i := p.pos; i < p.pos+byteCount; i++ {
		sink.WriteByte(p.owner.buf.Get(i))
	}
	p.pos += byteCount
	return byteCount, nil
}
