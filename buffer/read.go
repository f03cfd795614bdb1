package buffer

import (
	"encoding/binary"

	"github.com/kopia/okio-sub006/internal/ioerr"
)

// ReadByte consumes and returns one byte.
func (b *Buffer) ReadByte() (byte, error) {
	if b.size < 1 {
		return 0, ioerr.ErrEndOfInput
	}
	head := b.head
	v := head.Data()[head.Pos]
	head.Pos++
	b.size--
	if head.Pos == head.Limit {
		b.recycleHead()
	}
	return v, nil
}

// readN reads exactly n bytes (n <= 8) into a fixed buffer, falling
// back to byte-at-a-time when the value straddles a segment boundary.
func (b *Buffer) readN(n int) ([]byte, error) {
	if b.size < int64(n) {
		return nil, ioerr.ErrEndOfInput
	}
	buf := make([]byte, n)
	head := b.head
	if head.Len() >= n {
		copy(buf, head.Data()[head.Pos:head.Pos+n])
		head.Pos += n
		b.size -= int64(n)
		if head.Pos == head.Limit {
			b.recycleHead()
		}
		return buf, nil
	}
	for i := 0; i < n; i++ {
		v, err := b.ReadByte()
		if err != nil {
			return nil, err
		}
		buf[i] = v
	}
	return buf, nil
}

// ReadShort reads a big-endian int16.
func (b *Buffer) ReadShort() (int16, error) {
	buf, err := b.readN(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf)), nil
}

// ReadShortLe reads a little-endian int16.
func (b *Buffer) ReadShortLe() (int16, error) {
	buf, err := b.readN(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(buf)), nil
}

// ReadInt reads a big-endian int32.
func (b *Buffer) ReadInt() (int32, error) {
	buf, err := b.readN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf)), nil
}

// ReadIntLe reads a little-endian int32.
func (b *Buffer) ReadIntLe() (int32, error) {
	buf, err := b.readN(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

// ReadLong reads a big-endian int64.
func (b *Buffer) ReadLong() (int64, error) {
	buf, err := b.readN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf)), nil
}

// ReadLongLe reads a little-endian int64.
func (b *Buffer) ReadLongLe() (int64, error) {
	buf, err := b.readN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf)), nil
}
