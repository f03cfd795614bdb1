package buffer

import "github.com/kopia/okio-sub006/bytestring"

// IndexOfByte returns the first index at or after from where b
// occurs, walking segments, or -1.
func (buf *Buffer) IndexOfByte(target byte, from int64) int64 {
	return buf.IndexOfByteRange(target, from, buf.size)
}

// IndexOfByteRange returns the first index in [from, to) where target
// occurs, or -1.
func (buf *Buffer) IndexOfByteRange(target byte, from, to int64) int64 {
	if from < 0 {
		from = 0
	}
	if to > buf.size {
		to = buf.size
	}
	if from >= to {
		return -1
	}

	s := buf.head
	offset := int64(0)
	for offset+int64(s.Len()) <= from {
		offset += int64(s.Len())
		s = s.Next()
	}

	pos := from
	for pos < to {
		startInSeg := s.Pos + int(pos-offset)
		limitInSeg := s.Limit
		if segEnd := offset + int64(s.Len()); segEnd > to {
			limitInSeg = s.Pos + int(to-offset)
		}
		data := s.Data()
		for i := startInSeg; i < limitInSeg; i++ {
			if data[i] == target {
				return offset + int64(i-s.Pos)
			}
		}
		offset += int64(s.Len())
		pos = offset
		s = s.Next()
	}
	return -1
}

// IndexOf returns the first index at or after from where the given
// byte sequence occurs, or -1, scanning segment-by-segment without
// flattening the whole buffer.
func (buf *Buffer) IndexOf(target bytestring.ByteString, from int64) int64 {
	if target.Len() == 0 {
		if from < 0 {
			from = 0
		}
		if from > buf.size {
			return -1
		}
		return from
	}
	first := target.At(0)
	for pos := from; ; {
		idx := buf.IndexOfByte(first, pos)
		if idx < 0 || idx+int64(target.Len()) > buf.size {
			return -1
		}
		if buf.RangeEquals(idx, target, 0, target.Len()) {
			return idx
		}
		pos = idx + 1
	}
}

// IndexOfElement returns the first index at or after from where any
// byte in targetBytes occurs, or -1. Target sets of exactly 2 bytes
// use a tight two-byte comparison fast path.
func (buf *Buffer) IndexOfElement(targetBytes bytestring.ByteString, from int64) int64 {
	if targetBytes.Len() == 2 {
		a, b := targetBytes.At(0), targetBytes.At(1)
		return buf.indexOfEitherByte(a, b, from)
	}

	set := make(map[byte]struct{}, targetBytes.Len())
	for i := 0; i < targetBytes.Len(); i++ {
		set[targetBytes.At(i)] = struct{}{}
	}

	s := buf.head
	if s == nil {
		return -1
	}
	offset := int64(0)
	for offset+int64(s.Len()) <= from {
		offset += int64(s.Len())
		s = s.Next()
	}
	pos := from
	for pos < buf.size {
		startInSeg := s.Pos + int(pos-offset)
		data := s.Data()
		for i := startInSeg; i < s.Limit; i++ {
			if _, ok := set[data[i]]; ok {
				return offset + int64(i-s.Pos)
			}
		}
		offset += int64(s.Len())
		pos = offset
		if pos >= buf.size {
			break
		}
		s = s.Next()
	}
	return -1
}

func (buf *Buffer) indexOfEitherByte(a, b byte, from int64) int64 {
	if from < 0 {
		from = 0
	}
	s := buf.head
	if s == nil {
		return -1
	}
	offset := int64(0)
	for offset+int64(s.Len()) <= from {
		offset += int64(s.Len())
		s = s.Next()
	}
	pos := from
	for pos < buf.size {
		startInSeg := s.Pos + int(pos-offset)
		data := s.Data()
		for i := startInSeg; i < s.Limit; i++ {
			if data[i] == a || data[i] == b {
				return offset + int64(i-s.Pos)
			}
		}
		offset += int64(s.Len())
		pos = offset
		if offset >= buf.size {
			break
		}
		s = s.Next()
	}
	return -1
}

// RangeEquals reports whether buf[offset:offset+count] equals
// other[otherOffset:otherOffset+count].
func (buf *Buffer) RangeEquals(offset int64, other bytestring.ByteString, otherOffset, count int) bool {
	if offset < 0 || offset+int64(count) > buf.size {
		return false
	}
	if otherOffset < 0 || otherOffset+count > other.Len() {
		return false
	}
	for i := 0; i < count; i++ {
		if buf.Get(offset+int64(i)) != other.At(otherOffset+i) {
			return false
		}
	}
	return true
}
