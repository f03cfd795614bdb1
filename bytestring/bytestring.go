// Package bytestring implements ByteString, an immutable byte
// sequence with lazily memoized UTF-8 decoding and hash code, and
// SegmentedByteString, a zero-copy snapshot over shared segments.
// Equality and ordering follow a content-ID-style byte-oriented value
// type, generalized from a hex-only hash identifier to an arbitrary
// byte sequence with hex/base64 codecs.
package bytestring

import (
	"bytes"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// ByteString is an immutable sequence of bytes.
type ByteString struct {
	data []byte

	utf8Once   bool
	utf8Cached string
	hashOnce   bool
	hashCached uint32
}

// Of takes a defensive copy of b and returns it as a ByteString.
func Of(b []byte) ByteString {
	cp := make([]byte, len(b))
	copy(cp, b)
	return ByteString{data: cp}
}

// OfString encodes s as UTF-8 and wraps it.
func OfString(s string) ByteString {
	return ByteString{data: []byte(s)}
}

// Slice copies byteCount bytes of b starting at offset into a new
// ByteString.
func (b ByteString) Slice(offset, byteCount int) ByteString {
	if offset < 0 || byteCount < 0 || offset+byteCount > len(b.data) {
		panic(errors.Errorf("bytestring: slice [%d:%d] out of range for len %d", offset, offset+byteCount, len(b.data)))
	}
	return Of(b.data[offset : offset+byteCount])
}

// Len returns the number of bytes.
func (b ByteString) Len() int { return len(b.data) }

// Bytes returns a defensive copy of the underlying bytes.
func (b ByteString) Bytes() []byte {
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp
}

// internalBytes exposes the backing array without copying, for
// internal callers (e.g. SegmentedByteString) that already respect
// immutability.
func (b ByteString) internalBytes() []byte { return b.data }

// At returns the byte at pos.
func (b ByteString) At(pos int) byte { return b.data[pos] }

// UTF8 lazily decodes the bytes as UTF-8. Racy double-decoding under
// concurrent first access is acceptable: recomputation is idempotent
// and needs no lock.
func (b *ByteString) UTF8() string {
	if !b.utf8Once {
		b.utf8Cached = string(b.data)
		b.utf8Once = true
	}
	return b.utf8Cached
}

// Hex encodes the bytes as lowercase hexadecimal.
func (b ByteString) Hex() string { return hex.EncodeToString(b.data) }

// DecodeHex decodes a hex string, tolerating uppercase input, into a
// ByteString.
func DecodeHex(s string) (ByteString, error) {
	decoded, err := hex.DecodeString(strings.ToLower(s))
	if err != nil {
		return ByteString{}, errors.Wrap(err, "bytestring: invalid hex")
	}
	return ByteString{data: decoded}, nil
}

// Base64 encodes the bytes per RFC 2045 (standard alphabet, padded).
func (b ByteString) Base64() string { return base64.StdEncoding.EncodeToString(b.data) }

// Base64URL encodes the bytes per RFC 4648 with -_ digits, unpadded.
func (b ByteString) Base64URL() string { return base64.RawURLEncoding.EncodeToString(b.data) }

// DecodeBase64 decodes standard or URL-safe base64, with or without
// padding. It returns the zero value and false on invalid input.
func DecodeBase64(s string) (ByteString, bool) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if decoded, err := enc.DecodeString(s); err == nil {
			return ByteString{data: decoded}, true
		}
	}
	return ByteString{}, false
}

// HashKind selects a digest algorithm for Hash.
type HashKind int

// Supported digest algorithms.
const (
	MD5 HashKind = iota
	SHA1
	SHA256
	SHA512
)

// Hash returns the digest of the bytes under the given algorithm.
func (b ByteString) Hash(kind HashKind) ByteString {
	switch kind {
	case MD5:
		sum := md5.Sum(b.data)
		return Of(sum[:])
	case SHA1:
		sum := sha1.Sum(b.data)
		return Of(sum[:])
	case SHA256:
		sum := sha256.Sum256(b.data)
		return Of(sum[:])
	case SHA512:
		sum := sha512.Sum512(b.data)
		return Of(sum[:])
	default:
		panic("bytestring: unknown hash kind")
	}
}

// HMAC returns the keyed HMAC of the bytes under the given algorithm.
// Only SHA1/SHA256/SHA512 are valid HMAC variants.
func (b ByteString) HMAC(kind HashKind, key []byte) ByteString {
	mac := func() []byte {
		switch kind {
		case SHA1:
			h := hmac.New(sha1.New, key)
			h.Write(b.data)
			return h.Sum(nil)
		case SHA256:
			h := hmac.New(sha256.New, key)
			h.Write(b.data)
			return h.Sum(nil)
		case SHA512:
			h := hmac.New(sha512.New, key)
			h.Write(b.data)
			return h.Sum(nil)
		default:
			panic("bytestring: unsupported HMAC kind")
		}
	}()
	return Of(mac)
}

// HashCode returns a memoized 32-bit hash code, analogous to Java's
// String.hashCode but over raw bytes: suitable for in-process maps,
// not a cryptographic digest.
func (b *ByteString) HashCode() uint32 {
	if !b.hashOnce {
		var h uint32
		for _, c := range b.data {
			h = h*31 + uint32(c)
		}
		b.hashCached = h
		b.hashOnce = true
	}
	return b.hashCached
}

// Equal reports byte-for-byte equality.
func (b ByteString) Equal(other ByteString) bool {
	return bytes.Equal(b.data, other.data)
}

// Compare orders two ByteStrings lexicographically over unsigned
// bytes (0x00 < 0xFF).
func (b ByteString) Compare(other ByteString) int {
	return bytes.Compare(b.data, other.data)
}

// StartsWith reports whether b begins with other.
func (b ByteString) StartsWith(other ByteString) bool {
	return bytes.HasPrefix(b.data, other.data)
}

// EndsWith reports whether b ends with other.
func (b ByteString) EndsWith(other ByteString) bool {
	return bytes.HasSuffix(b.data, other.data)
}

// IndexOf returns the first index at or after from where other
// occurs, or -1.
func (b ByteString) IndexOf(other ByteString, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(b.data) {
		return -1
	}
	idx := bytes.Index(b.data[from:], other.data)
	if idx < 0 {
		return -1
	}
	return idx + from
}

// LastIndexOf returns the last index at or before from where other
// occurs, or -1.
func (b ByteString) LastIndexOf(other ByteString, from int) int {
	upper := from + len(other.data)
	if upper > len(b.data) {
		upper = len(b.data)
	}
	if upper < 0 {
		return -1
	}
	idx := bytes.LastIndex(b.data[:upper], other.data)
	return idx
}

// RangeEquals reports whether b[offset:offset+count] equals
// other[otherOffset:otherOffset+count].
func (b ByteString) RangeEquals(offset int, other ByteString, otherOffset, count int) bool {
	if offset < 0 || otherOffset < 0 || count < 0 {
		return false
	}
	if offset+count > len(b.data) || otherOffset+count > len(other.data) {
		return false
	}
	return bytes.Equal(b.data[offset:offset+count], other.data[otherOffset:otherOffset+count])
}

// String returns a human summary: a UTF-8 text preview (\n and \r
// written as backslash escapes) truncated at 64 code points, falling
// back to a hex preview of at most 64 bytes for non-UTF-8 content or
// content holding any other control character.
func (b ByteString) String() string {
	if !isPrintableUTF8Preview(b.data) {
		preview := b.data
		truncated := false
		if len(preview) > 64 {
			preview = preview[:64]
			truncated = true
		}
		s := "[hex=" + hex.EncodeToString(preview)
		if truncated {
			s += "…"
		}
		return s + "]"
	}

	runes := []rune(string(b.data))
	truncated := false
	if len(runes) > 64 {
		runes = runes[:64]
		truncated = true
	}
	var sb strings.Builder
	sb.WriteString("[text=")
	for _, r := range runes {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	if truncated {
		sb.WriteString("…")
	}
	sb.WriteString("]")
	return sb.String()
}

func isPrintableUTF8Preview(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, r := range string(data) {
		if r == '\n' || r == '\r' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
