package buffer

import (
	"github.com/pkg/errors"

	"github.com/kopia/okio-sub006/bytestring"
	"github.com/kopia/okio-sub006/internal/ioerr"
	"github.com/kopia/okio-sub006/iotimeout"
	"github.com/kopia/okio-sub006/segment"
)

// Buffer is a segmented, in-memory byte queue that is simultaneously
// a Source and a Sink. It is single-owner: concurrent access to one
// Buffer from multiple goroutines is undefined behavior.
type Buffer struct {
	pool *segment.Pool
	head *segment.Segment
	size int64
}

// New returns an empty Buffer backed by the default shared segment
// pool.
func New() *Buffer { return &Buffer{pool: segment.Default()} }

// NewWithPool returns an empty Buffer backed by an explicit pool, for
// isolated testing.
func NewWithPool(p *segment.Pool) *Buffer { return &Buffer{pool: p} }

// Size returns the number of readable bytes.
func (b *Buffer) Size() int64 { return b.size }

// Head exposes the buffer's head segment, or nil if empty. Exported
// for transform decorators (e.g. Deflate) that need to read directly
// from the front segment without consuming through Buffer's API.
func (b *Buffer) Head() *segment.Segment { return b.head }

// tail returns the buffer's current tail segment (b.head.Prev()), or
// nil if the buffer is empty.
func (b *Buffer) tail() *segment.Segment {
	if b.head == nil {
		return nil
	}
	return b.head.Prev()
}

// writableSegment returns a tail segment with at least min bytes of
// free capacity, allocating and linking a fresh one from the pool if
// necessary, preserving the "only the tail may be non-full, and only
// if owned and unshared" invariant.
func (b *Buffer) writableSegment(min int) *segment.Segment {
	tail := b.tail()
	if tail != nil && tail.Owner && !tail.Shared && tail.Cap() >= min {
		return tail
	}
	fresh := b.pool.Take()
	if b.head == nil {
		b.head = fresh
	} else {
		tail.Push(fresh)
	}
	return fresh
}

// recycleHead pops the (now-empty) head segment and returns it to the
// pool.
func (b *Buffer) recycleHead() {
	old := b.head
	next := old.Pop()
	b.head = next
	b.pool.Recycle(old)
}

// Clear discards all bytes, recycling every segment.
func (b *Buffer) Clear() {
	b.Skip(b.size)
}

// Skip discards n bytes from the head of the buffer.
func (b *Buffer) Skip(n int64) {
	if n > b.size {
		n = b.size
	}
	for n > 0 {
		head := b.head
		toSkip := int64(head.Len())
		if toSkip > n {
			head.Pos += int(n)
			b.size -= n
			return
		}
		b.size -= toSkip
		n -= toSkip
		b.recycleHead()
	}
}

// Write implements move semantics from source: bytes physically move
// from source's segment cycle into this buffer's, with no payload
// memcpy except opportunistic compaction and splits of a head segment
// below segment.ShareMinimum bytes. After Write, source.Size()
// is reduced by byteCount and b.Size() grows by the same amount.
func (b *Buffer) Write(source *Buffer, byteCount int64) error {
	if byteCount < 0 || byteCount > source.size {
		return errors.Wrapf(ioerr.ErrInvalidArgument, "buffer: move %d exceeds source size %d", byteCount, source.size)
	}

	remaining := byteCount
	for remaining > 0 {
		head := source.head
		n := int64(head.Len())

		var moved *segment.Segment
		if n <= remaining {
			moved = head
			next := moved.Pop()
			if moved == source.head {
				source.head = next
			}
		} else {
			moved = head.Split(int(remaining))
			n = remaining
			moved.Pop()
		}

		if b.head == nil {
			b.head = moved
		} else {
			b.head.Prev().Push(moved)
		}
		moved.Compact()

		source.size -= n
		b.size += n
		remaining -= n
	}
	return nil
}

// Read is the reverse of Write: up to byteCount bytes move from the
// head of this buffer into sink via sink.Write, so a head segment
// longer than the count is split. Read satisfies the Source
// contract, returning -1 with nothing moved once this buffer is
// empty, so a Buffer can itself be used wherever a Source is
// expected (e.g. feeding a transform decorator from an in-memory
// payload).
func (b *Buffer) Read(sink *Buffer, byteCount int64) (int64, error) {
	if b.size == 0 {
		return -1, nil
	}
	if byteCount > b.size {
		byteCount = b.size
	}
	if err := sink.Write(b, byteCount); err != nil {
		return 0, err
	}
	return byteCount, nil
}

// Flush is a no-op, satisfying the Sink contract: a Buffer has no
// downstream to push bytes to.
func (b *Buffer) Flush() error { return nil }

// Timeout returns a Timeout with no limits, satisfying the Source and
// Sink contracts: a Buffer is a pure in-memory structure with nothing
// to time out on.
func (b *Buffer) Timeout() *iotimeout.Timeout { return iotimeout.None() }

// Close is a no-op, satisfying the Source and Sink contracts.
func (b *Buffer) Close() error { return nil }

// CopyTo performs segment-level aliasing (shared copies) of
// [offset, offset+byteCount) into sink; this buffer is unchanged.
func (b *Buffer) CopyTo(sink *Buffer, offset, byteCount int64) error {
	if offset < 0 || byteCount < 0 || offset+byteCount > b.size {
		return errors.Wrapf(ioerr.ErrInvalidArgument, "buffer: copyTo range [%d,%d) out of bounds for size %d", offset, offset+byteCount, b.size)
	}
	if byteCount == 0 {
		return nil
	}

	s := b.head
	pos := int64(0)
	for pos+int64(s.Len()) <= offset {
		pos += int64(s.Len())
		s = s.Next()
	}

	remaining := byteCount
	skipInSegment := int(offset - pos)
	for remaining > 0 {
		copyLen := s.Len() - skipInSegment
		if int64(copyLen) > remaining {
			copyLen = int(remaining)
		}

		alias := segment.NewAliasView(s, s.Pos+skipInSegment, s.Pos+skipInSegment+copyLen)
		if sink.head == nil {
			sink.head = alias
		} else {
			sink.head.Prev().Push(alias)
		}

		sink.size += int64(copyLen)
		remaining -= int64(copyLen)
		skipInSegment = 0
		s = s.Next()
	}
	return nil
}

// Snapshot returns an immutable SegmentedByteString over the whole
// buffer's current bytes, sharing segments rather than copying.
func (b *Buffer) Snapshot() *bytestring.SegmentedByteString {
	return b.SnapshotN(b.size)
}

// SnapshotN returns an immutable snapshot of the first byteCount
// bytes.
func (b *Buffer) SnapshotN(byteCount int64) *bytestring.SegmentedByteString {
	if byteCount == 0 {
		return bytestring.NewSegmented(nil, nil, nil)
	}
	var datas [][]byte
	var poss []int
	var lens []int

	remaining := byteCount
	s := b.head
	for remaining > 0 {
		n := s.Len()
		if int64(n) > remaining {
			n = int(remaining)
		}
		s.Shared = true
		datas = append(datas, s.Data())
		poss = append(poss, s.Pos)
		lens = append(lens, n)
		remaining -= int64(n)
		s = s.Next()
	}
	return bytestring.NewSegmented(datas, poss, lens)
}

// Get returns the byte at the given position without consuming it.
func (b *Buffer) Get(pos int64) byte {
	if pos < 0 || pos >= b.size {
		panic(errors.Wrapf(ioerr.ErrInvalidArgument, "buffer: position %d out of range for size %d", pos, b.size))
	}
	s := b.head
	offset := int64(0)
	for offset+int64(s.Len()) <= pos {
		offset += int64(s.Len())
		s = s.Next()
	}
	return s.Data()[s.Pos+int(pos-offset)]
}

// ReadByteArray consumes and returns the first byteCount bytes as a
// freshly allocated []byte.
func (b *Buffer) ReadByteArray(byteCount int64) ([]byte, error) {
	if byteCount > b.size {
		return nil, ioerr.ErrEndOfInput
	}
	out := make([]byte, byteCount)
	remaining := byteCount
	off := 0
	for remaining > 0 {
		head := b.head
		n := head.Len()
		if int64(n) > remaining {
			n = int(remaining)
		}
		copy(out[off:], head.Data()[head.Pos:head.Pos+n])
		off += n
		remaining -= int64(n)
		b.size -= int64(n)
		head.Pos += n
		if head.Pos == head.Limit {
			b.recycleHead()
		}
	}
	return out, nil
}
