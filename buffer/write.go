package buffer

import (
	"encoding/binary"

	utf8pkg "github.com/kopia/okio-sub006/utf8"
)

// WriteBytes appends p verbatim, splitting across as many tail
// segments as needed.
func (b *Buffer) WriteBytes(p []byte) *Buffer {
	for len(p) > 0 {
		tail := b.writableSegment(1)
		n := copy(tail.Data()[tail.Limit:], p)
		tail.Limit += n
		b.size += int64(n)
		p = p[n:]
	}
	return b
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(v byte) *Buffer {
	tail := b.writableSegment(1)
	tail.Data()[tail.Limit] = v
	tail.Limit++
	b.size++
	return b
}

// WriteShort appends a big-endian int16.
func (b *Buffer) WriteShort(v int16) *Buffer {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	return b.WriteBytes(buf[:])
}

// WriteShortLe appends a little-endian int16.
func (b *Buffer) WriteShortLe(v int16) *Buffer {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return b.WriteBytes(buf[:])
}

// WriteInt appends a big-endian int32.
func (b *Buffer) WriteInt(v int32) *Buffer {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	return b.WriteBytes(buf[:])
}

// WriteIntLe appends a little-endian int32.
func (b *Buffer) WriteIntLe(v int32) *Buffer {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return b.WriteBytes(buf[:])
}

// WriteLong appends a big-endian int64.
func (b *Buffer) WriteLong(v int64) *Buffer {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return b.WriteBytes(buf[:])
}

// WriteLongLe appends a little-endian int64.
func (b *Buffer) WriteLongLe(v int64) *Buffer {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return b.WriteBytes(buf[:])
}

// WriteUtf8 appends the bytes of s (a Go string, already UTF-8)
// unchanged in one copy — Go strings cannot contain unpaired surrogates, so the
// surrogate-replacement rule only fires when a caller feeds raw code
// points via WriteUtf8CodePoint.
func (b *Buffer) WriteUtf8(s string) *Buffer {
	return b.WriteBytes([]byte(s))
}

// WriteUtf8CodePoint appends the UTF-8 encoding of a single code
// point, replacing partial surrogates with '?'.
func (b *Buffer) WriteUtf8CodePoint(cp rune) *Buffer {
	n := utf8pkg.SizeCodePoint(cp)
	tail := b.writableSegment(n)
	buf := tail.Data()[tail.Limit : tail.Limit : tail.Limit+n]
	buf = utf8pkg.EncodeCodePoint(buf, cp)
	tail.Limit += len(buf)
	b.size += int64(len(buf))
	return b
}

// WriteDecimalLong appends the base-10 ASCII representation of v,
// including a leading '-' for negative values.
func (b *Buffer) WriteDecimalLong(v int64) *Buffer {
	return b.WriteUtf8(formatDecimalLong(v))
}

func formatDecimalLong(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	// build digits from the negative representation so MinInt64 works
	var nv int64
	if neg {
		nv = v
	} else {
		nv = -v
	}
	var digits [20]byte
	i := len(digits)
	for nv != 0 {
		i--
		digits[i] = byte('0' - (nv % 10))
		nv /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}

// WriteHexadecimalUnsignedLong appends the lowercase hex
// representation of v (no leading zeros, except "0" itself).
func (b *Buffer) WriteHexadecimalUnsignedLong(v uint64) *Buffer {
	if v == 0 {
		return b.WriteByte('0')
	}
	const digits = "0123456789abcdef"
	var buf [16]byte
	i := len(buf)
	for v != 0 {
		i--
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return b.WriteBytes(buf[i:])
}
