// Package segment implements the fixed-capacity byte window and
// recyclable free list that every Buffer in this module is built
// from: a doubly-linked cyclic chain of Segments, pooled for reuse the
// way a buffer manager pools whole byte-buffer values.
package segment

// Size is the fixed capacity of every Segment's backing array. It is
// implementation-selected and must never be hard-coded by callers.
const Size = 8192

// ShareMinimum is the smallest byte count Split will share by
// aliasing rather than copying, to avoid fragmenting the pool with
// many tiny shared segments.
const ShareMinimum = 1024

// Segment is a fixed-capacity byte window with a readable range
// [Pos, Limit) and two ownership flags. Segments form a cyclic
// doubly-linked list per Buffer; a lone segment has prev == next ==
// itself.
type Segment struct {
	data []byte

	// Pos is the index of the first readable byte.
	Pos int
	// Limit is one past the index of the last readable byte.
	Limit int

	// Owner is true if this segment may write into data[Limit:cap].
	Owner bool
	// Shared is true if data is aliased by another Segment; shared
	// segments must never be mutated in place.
	Shared bool

	prev *Segment
	next *Segment
}

// New allocates a fresh, unshared, owned, self-looped Segment with an
// empty readable range. Prefer Pool.Take over calling New directly so
// segments are recycled.
func New() *Segment {
	s := &Segment{data: make([]byte, Size), Owner: true}
	s.prev = s
	s.next = s
	return s
}

// NewAliasView returns a new, self-looped, unowned Segment sharing
// src's backing array over [pos, limit), marking src itself Shared so
// it is never again mutated in place. Used by Buffer.CopyTo to create
// zero-copy aliases into a destination buffer.
func NewAliasView(src *Segment, pos, limit int) *Segment {
	src.Shared = true
	s := &Segment{data: src.data, Pos: pos, Limit: limit, Shared: true, Owner: false}
	s.prev = s
	s.next = s
	return s
}

// Data exposes the full backing array. Callers must respect Pos/Limit
// and the Owner/Shared flags; writing into a Shared segment or into
// [Limit:cap) of a non-Owner segment violates the buffer's invariants.
func (s *Segment) Data() []byte { return s.data }

// Len returns the number of readable bytes.
func (s *Segment) Len() int { return s.Limit - s.Pos }

// Cap returns the remaining writable capacity, or 0 if the segment is
// not owned or is shared.
func (s *Segment) Cap() int {
	if !s.Owner || s.Shared {
		return 0
	}
	return len(s.data) - s.Limit
}

// Next returns the segment's successor in its cycle.
func (s *Segment) Next() *Segment { return s.next }

// Prev returns the segment's predecessor in its cycle.
func (s *Segment) Prev() *Segment { return s.prev }

// Alone reports whether s is the only segment in its cycle.
func (s *Segment) Alone() bool { return s.next == s }

// Push inserts t immediately after s in s's cycle and returns t.
func (s *Segment) Push(t *Segment) *Segment {
	t.next = s.next
	t.prev = s
	s.next.prev = t
	s.next = t
	return t
}

// Pop removes s from its cycle, restoring s to a self-looped lone
// segment, and returns s's former successor, or nil if s was already
// alone.
func (s *Segment) Pop() *Segment {
	var result *Segment
	if s.next != s {
		result = s.next
	}
	s.prev.next = s.next
	s.next.prev = s.prev
	s.next = s
	s.prev = s
	return result
}

// Split moves the first byteCount bytes of s out into a new segment
// inserted immediately before s in the cycle, returning that new
// segment. Below ShareMinimum bytes the data is copied; at or above
// it, the new segment aliases s's backing array and is marked Shared.
func (s *Segment) Split(byteCount int) *Segment {
	if byteCount <= 0 || byteCount > s.Len() {
		panic("segment: split out of range")
	}

	var prefix *Segment
	if byteCount >= ShareMinimum {
		prefix = s.sharedCopy()
		prefix.Limit = prefix.Pos + byteCount
	} else {
		prefix = New()
		copy(prefix.data, s.data[s.Pos:s.Pos+byteCount])
		prefix.Limit = byteCount
	}

	prefix.prev = s.prev
	prefix.next = s
	s.prev.next = prefix
	s.prev = prefix

	s.Pos += byteCount
	return prefix
}

// sharedCopy returns a new Segment that aliases s's backing array over
// the same readable range, both marked Shared.
func (s *Segment) sharedCopy() *Segment {
	s.Shared = true
	return &Segment{data: s.data, Pos: s.Pos, Limit: s.Limit, Shared: true, Owner: false}
}

// WriteTo copies byteCount bytes from the front of s into the free
// region of tail, compacting tail's existing bytes to the front first
// if that frees enough contiguous room.
func (s *Segment) WriteTo(tail *Segment, byteCount int) {
	if !tail.Owner {
		panic("segment: writeTo requires an owned tail")
	}
	if tail.Limit+byteCount > len(tail.data) {
		if tail.Shared {
			panic("segment: writeTo into shared segment")
		}
		if tail.Len()+byteCount > len(tail.data) {
			panic("segment: writeTo overflow")
		}
		copy(tail.data, tail.data[tail.Pos:tail.Limit])
		tail.Limit -= tail.Pos
		tail.Pos = 0
	}

	copy(tail.data[tail.Limit:], s.data[s.Pos:s.Pos+byteCount])
	tail.Limit += byteCount
	s.Pos += byteCount
}

// Compact merges s into its predecessor and reports whether it did,
// when the combined bytes fit in one segment and the predecessor is
// owned and unshared. The caller is responsible for recycling s (via
// Pool.Recycle) after a successful compact.
func (s *Segment) Compact() bool {
	if s.Alone() {
		return false
	}
	prev := s.prev
	if !prev.Owner || prev.Shared {
		return false
	}
	byteCount := s.Len()
	availableInPrev := len(prev.data) - prev.Limit + prev.Pos
	if byteCount > availableInPrev {
		return false
	}
	s.WriteTo(prev, byteCount)
	s.Pop()
	return true
}
