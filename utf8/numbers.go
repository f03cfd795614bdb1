package utf8

import "github.com/kopia/okio-sub006/internal/ioerr"

// ByteSource is the minimal random-access byte lookahead the number
// parsers need. *buffer.Buffer satisfies it directly (via Size/Get),
// so parsing runs against the live buffer rather than a fixed-size
// snapshot — a run of digits longer than any particular preview
// window (e.g. many leading zeros) is still scanned to its actual
// end instead of being truncated mid-number.
type ByteSource interface {
	Size() int64
	Get(pos int64) byte
}

// ParseDecimalLong parses an optional leading '-' then ASCII digits
// from src, returning the parsed value and the number of bytes
// consumed. The value is built negatively throughout (so
// math.MinInt64 round-trips) and overflow is detected before it
// occurs, raising ioerr.ErrInvalidNumber rather than silently
// wrapping. At least one digit is required; a mismatched leading byte
// (non-digit, non '-') or a lone '-' also raises ErrInvalidNumber.
func ParseDecimalLong(src ByteSource) (int64, int64, error) {
	size := src.Size()
	if size == 0 {
		return 0, 0, ioerr.ErrInvalidNumber
	}

	var i int64
	negative := false
	if src.Get(0) == '-' {
		negative = true
		i++
	}

	if i >= size || !isDigit(src.Get(i)) {
		return 0, 0, ioerr.ErrInvalidNumber
	}

	var value int64
	var digits int64
	for i < size && isDigit(src.Get(i)) {
		digit := int64(src.Get(i) - '0')

		// value is accumulated as a negative number so MinInt64 is
		// representable; overflow is detected before the next
		// multiply-and-subtract would wrap.
		if value < minInt64/10 {
			return 0, 0, ioerr.ErrInvalidNumber
		}
		value *= 10
		if value < minInt64+digit {
			return 0, 0, ioerr.ErrInvalidNumber
		}
		value -= digit

		i++
		digits++
	}

	if digits == 0 {
		return 0, 0, ioerr.ErrInvalidNumber
	}

	if !negative {
		if value == minInt64 {
			return 0, 0, ioerr.ErrInvalidNumber
		}
		value = -value
	}

	return value, i, nil
}

const minInt64 = -1 << 63

// ParseHexadecimalUnsignedLong parses a run of 0-9a-fA-F from src,
// returning the value reinterpreted as an unsigned 64-bit number and
// the bytes consumed. Overflow is detected when the top nibble is
// non-zero before the next shift.
func ParseHexadecimalUnsignedLong(src ByteSource) (uint64, int64, error) {
	var value uint64
	var i int64
	size := src.Size()
	for i < size {
		d, ok := hexDigit(src.Get(i))
		if !ok {
			break
		}
		if value&0xF000000000000000 != 0 {
			return 0, 0, ioerr.ErrInvalidNumber
		}
		value = value<<4 | uint64(d)
		i++
	}
	if i == 0 {
		return 0, 0, ioerr.ErrInvalidNumber
	}
	return value, i, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
