package buffer

import (
	"github.com/kopia/okio-sub006/internal/ioerr"
	utf8pkg "github.com/kopia/okio-sub006/utf8"
)

// ReadDecimalLong parses an optional leading '-' then ASCII digits,
// consuming only the bytes that form the number; a trailing
// non-digit is left unconsumed. Raises InvalidNumber without
// consuming the offending byte if no digits are present or on
// overflow. Parsing walks the buffer directly (via Size/Get) rather
// than a fixed-size preview snapshot, so a digit run longer than any
// particular window — many leading zeros, say — is still scanned to
// its real end instead of being cut off mid-number.
func (b *Buffer) ReadDecimalLong() (int64, error) {
	if b.size == 0 {
		return 0, ioerr.ErrEndOfInput
	}
	v, n, err := utf8pkg.ParseDecimalLong(b)
	if err != nil {
		return 0, err
	}
	b.Skip(n)
	return v, nil
}

// ReadHexadecimalUnsignedLong parses 0-9a-fA-F digits, consuming only
// the bytes that form the number.
func (b *Buffer) ReadHexadecimalUnsignedLong() (uint64, error) {
	if b.size == 0 {
		return 0, ioerr.ErrEndOfInput
	}
	v, n, err := utf8pkg.ParseHexadecimalUnsignedLong(b)
	if err != nil {
		return 0, err
	}
	b.Skip(n)
	return v, nil
}
