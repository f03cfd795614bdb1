package bytestring

import "sort"

// SegmentedByteString is a ByteString backed by a directory over
// shared byte-array segments, letting Buffer.Snapshot avoid copying
// payload data.
type SegmentedByteString struct {
	segments [][]byte
	// dir holds 2n entries: [0:n) is the cumulative-size prefix
	// (strictly increasing to total), [n:2n) is the per-segment Pos
	// offset into segments[i].
	dir   []int
	total int

	flat      *ByteString
	flatOnce  bool
}

// NewSegmented builds a SegmentedByteString from segment byte slices
// paired with each segment's starting read offset (pos) and length.
// Callers (buffer.Buffer.Snapshot) are responsible for marking the
// underlying segments Shared before calling this.
func NewSegmented(segments [][]byte, pos []int, length []int) *SegmentedByteString {
	n := len(segments)
	dir := make([]int, 2*n)
	total := 0
	for i := 0; i < n; i++ {
		total += length[i]
		dir[i] = total
		dir[n+i] = pos[i]
	}
	return &SegmentedByteString{segments: segments, dir: dir, total: total}
}

// Len returns the total number of bytes.
func (s *SegmentedByteString) Len() int { return s.total }

func (s *SegmentedByteString) n() int { return len(s.segments) }

// segmentFor returns the segment index containing byte position pos
// (0-based, global) via binary search over the prefix-sum directory.
func (s *SegmentedByteString) segmentFor(pos int) int {
	n := s.n()
	idx := sort.Search(n, func(i int) bool { return s.dir[i] > pos })
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// At returns the byte at the given global position.
func (s *SegmentedByteString) At(pos int) byte {
	if pos < 0 || pos >= s.total {
		panic("bytestring: index out of range")
	}
	i := s.segmentFor(pos)
	segStart := 0
	if i > 0 {
		segStart = s.dir[i-1]
	}
	offsetInSegment := s.dir[s.n()+i] + (pos - segStart)
	return s.segments[i][offsetInSegment]
}

// RangeEquals reports whether s[offset:offset+count] equals
// other[otherOffset:otherOffset+count], walking segments instead of
// flattening.
func (s *SegmentedByteString) RangeEquals(offset int, other ByteString, otherOffset, count int) bool {
	if offset < 0 || count < 0 || offset+count > s.total {
		return false
	}
	if otherOffset < 0 || otherOffset+count > other.Len() {
		return false
	}
	otherBytes := other.internalBytes()
	remaining := count
	pos := offset
	op := otherOffset
	for remaining > 0 {
		i := s.segmentFor(pos)
		segStart := 0
		if i > 0 {
			segStart = s.dir[i-1]
		}
		offsetInSegment := s.dir[s.n()+i] + (pos - segStart)
		available := s.dir[i] - pos
		chunk := available
		if chunk > remaining {
			chunk = remaining
		}
		for k := 0; k < chunk; k++ {
			if s.segments[i][offsetInSegment+k] != otherBytes[op+k] {
				return false
			}
		}
		pos += chunk
		op += chunk
		remaining -= chunk
	}
	return true
}

// Flatten materializes the segmented bytes into a single ByteString,
// caching the result on first use.
func (s *SegmentedByteString) Flatten() ByteString {
	if !s.flatOnce {
		buf := make([]byte, s.total)
		off := 0
		for i, seg := range s.segments {
			start := s.dir[s.n()+i]
			segStart := 0
			if i > 0 {
				segStart = s.dir[i-1]
			}
			length := s.dir[i] - segStart
			copy(buf[off:], seg[start:start+length])
			off += length
		}
		flat := ByteString{data: buf}
		s.flat = &flat
		s.flatOnce = true
	}
	return *s.flat
}

// Hex, Base64, Base64URL, Hash, UTF8, String all flatten once
// and delegate, caching the flattened result.
func (s *SegmentedByteString) Hex() string              { f := s.Flatten(); return f.Hex() }
func (s *SegmentedByteString) Base64() string            { f := s.Flatten(); return f.Base64() }
func (s *SegmentedByteString) Base64URL() string         { f := s.Flatten(); return f.Base64URL() }
func (s *SegmentedByteString) Hash(k HashKind) ByteString { f := s.Flatten(); return f.Hash(k) }
func (s *SegmentedByteString) UTF8() string              { f := s.Flatten(); return f.UTF8() }
func (s *SegmentedByteString) String() string            { f := s.Flatten(); return f.String() }

// HashCode iterates segments directly rather than flattening first.
func (s *SegmentedByteString) HashCode() uint32 {
	var h uint32
	for i, seg := range s.segments {
		start := s.dir[s.n()+i]
		segStart := 0
		if i > 0 {
			segStart = s.dir[i-1]
		}
		length := s.dir[i] - segStart
		for _, c := range seg[start : start+length] {
			h = h*31 + uint32(c)
		}
	}
	return h
}
