package transform

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/zeebo/blake3"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/bytestring"
)

// HashKind selects the digest algorithm a HashingSource/HashingSink
// accumulates, matching block/block_formatter.go's algorithm-selector
// shape but adding BLAKE3 from the pack's github.com/zeebo/blake3
// dependency alongside the stdlib SHA family.
type HashKind int

// Supported digest algorithms.
const (
	SHA256 HashKind = iota
	SHA512
	HMACSHA256
	BLAKE3
)

func newHash(kind HashKind, key []byte) hash.Hash {
	switch kind {
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	case HMACSHA256:
		return hmac.New(sha256.New, key)
	case BLAKE3:
		return blake3.New()
	default:
		panic("transform: unknown hash kind")
	}
}

// HashingSource wraps a Source, feeding every byte that passes
// through Read into a running digest, available via Sum once the
// stream is exhausted.
type HashingSource struct {
	ForwardingSource
	h hash.Hash
}

// NewHashingSource wraps src, accumulating kind over everything read.
// key is only used for HMACSHA256 and is otherwise ignored.
func NewHashingSource(src buffer.Source, kind HashKind, key []byte) *HashingSource {
	return &HashingSource{ForwardingSource: ForwardingSource{Inner: src}, h: newHash(kind, key)}
}

func (h *HashingSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	before := sink.Size()
	n, err := h.Inner.Read(sink, byteCount)
	if n > 0 {
		feedHash(h.h, sink, before, n)
	}
	return n, err
}

// Sum returns the digest of every byte read so far.
func (h *HashingSource) Sum() bytestring.ByteString {
	return bytestring.Of(h.h.Sum(nil))
}

// HashingSink wraps a Sink, feeding every byte that passes through
// Write into a running digest.
type HashingSink struct {
	ForwardingSink
	h hash.Hash
}

// NewHashingSink wraps dst, accumulating kind over everything written.
func NewHashingSink(dst buffer.Sink, kind HashKind, key []byte) *HashingSink {
	return &HashingSink{ForwardingSink: ForwardingSink{Inner: dst}, h: newHash(kind, key)}
}

func (h *HashingSink) Write(source *buffer.Buffer, byteCount int64) error {
	snap := source.SnapshotN(byteCount)
	flat := snap.Flatten()
	h.h.Write(flat.Bytes())
	return h.Inner.Write(source, byteCount)
}

// Sum returns the digest of every byte written so far.
func (h *HashingSink) Sum() bytestring.ByteString {
	return bytestring.Of(h.h.Sum(nil))
}

// feedHash writes the n bytes newly appended to sink (starting at
// offset before) into h, reading them back out via a snapshot so the
// sink's own contents are left untouched for the caller to consume.
func feedHash(h hash.Hash, sink *buffer.Buffer, before, n int64) {
	flat := sink.SnapshotN(before + n).Flatten()
	h.Write(flat.Bytes()[before : before+n])
}
