package buffer

import (
	"fmt"

	"github.com/kopia/okio-sub006/internal/ioerr"
	utf8pkg "github.com/kopia/okio-sub006/utf8"
)

// ReadUtf8 decodes and consumes byteCount bytes as UTF-8. If the run
// fits within one segment it decodes in place; otherwise it falls
// through ReadByteArray.
func (b *Buffer) ReadUtf8(byteCount int64) (string, error) {
	if byteCount < 0 || byteCount > b.size {
		return "", ioerr.ErrEndOfInput
	}
	if b.head != nil && int64(b.head.Len()) >= byteCount {
		head := b.head
		s := string(head.Data()[head.Pos : head.Pos+int(byteCount)])
		head.Pos += int(byteCount)
		b.size -= byteCount
		if head.Pos == head.Limit {
			b.recycleHead()
		}
		return s, nil
	}
	buf, err := b.ReadByteArray(byteCount)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadAllUtf8 decodes and consumes every remaining byte as UTF-8.
func (b *Buffer) ReadAllUtf8() (string, error) {
	return b.ReadUtf8(b.size)
}

// ReadUtf8CodePoint decodes and consumes one code point, replacing
// malformed input with the replacement code point.
func (b *Buffer) ReadUtf8CodePoint() (rune, error) {
	if b.size == 0 {
		return 0, ioerr.ErrEndOfInput
	}
	// Gather up to 4 bytes (the max UTF-8 sequence length) without
	// consuming, so DecodeCodePoint can see enough context.
	var lookahead [4]byte
	n := 0
	s := b.head
	pos := s.Pos
	for n < 4 && int64(n) < b.size {
		if pos == s.Limit {
			s = s.Next()
			pos = s.Pos
		}
		lookahead[n] = s.Data()[pos]
		pos++
		n++
	}
	cp, consumed := utf8pkg.DecodeCodePoint(lookahead[:n])
	b.Skip(int64(consumed))
	return cp, nil
}

// ReadUtf8Line scans for the next '\n', stripping a preceding '\r',
// and consumes through the newline (or to EOF if none is found,
// returning the remaining bytes and no error — a shorter buffer is
// simply exhausted).
func (b *Buffer) ReadUtf8Line() (string, bool, error) {
	idx := b.IndexOfByte('\n', 0)
	if idx < 0 {
		if b.size == 0 {
			return "", false, nil
		}
		s, err := b.ReadAllUtf8()
		return s, true, err
	}
	lineLen := idx
	if idx > 0 && b.Get(idx-1) == '\r' {
		lineLen = idx - 1
	}
	s, err := b.ReadUtf8(lineLen)
	if err != nil {
		return "", false, err
	}
	b.Skip(idx - lineLen + 1)
	return s, true, nil
}

// ReadUtf8LineStrict scans for '\n' within limit+1 bytes, stripping a
// preceding '\r' (supporting the exact "\r\n" straddling the
// limit/limit+1 boundary). Raises EndOfInput, wrapped with a hex
// preview of up to 32 available bytes, if no '\n' is found in range.
func (b *Buffer) ReadUtf8LineStrict(limit int64) (string, error) {
	scanLimit := limit + 1
	if scanLimit > b.size {
		scanLimit = b.size
	}
	idx := b.IndexOfByte('\n', 0)
	if idx >= 0 && idx <= limit {
		lineLen := idx
		if idx > 0 && b.Get(idx-1) == '\r' {
			lineLen = idx - 1
		}
		s, err := b.ReadUtf8(lineLen)
		if err != nil {
			return "", err
		}
		b.Skip(idx - lineLen + 1)
		return s, nil
	}

	if limit+1 <= b.size && b.Get(limit) == '\r' && limit+1 < b.size && b.Get(limit+1) == '\n' {
		s, err := b.ReadUtf8(limit)
		if err != nil {
			return "", err
		}
		b.Skip(2)
		return s, nil
	}

	preview := make([]byte, 0, 32)
	n := int64(32)
	if n > scanLimit {
		n = scanLimit
	}
	for i := int64(0); i < n; i++ {
		preview = append(preview, b.Get(i))
	}
	return "", fmt.Errorf("%w: no line terminator found, content=%x...", ioerr.ErrEndOfInput, preview)
}
