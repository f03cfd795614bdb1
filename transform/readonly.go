package transform

import (
	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/ioerr"
)

// ReadOnlySink rejects every Write with ErrInvalidArgument, makes
// Flush a no-op, and still forwards Timeout/Close, letting a caller hand out a
// Sink-shaped handle that can never mutate the destination — grounded
// on the write-gating shape of blob.writeLimitStorage, specialized to
// a hard zero-byte limit instead of a shrinking counter.
type ReadOnlySink struct {
	ForwardingSink
}

// NewReadOnlySink wraps dst, whose Write/Flush methods are never
// called.
func NewReadOnlySink(dst buffer.Sink) *ReadOnlySink {
	return &ReadOnlySink{ForwardingSink{Inner: dst}}
}

func (r *ReadOnlySink) Write(source *buffer.Buffer, byteCount int64) error {
	return ioerr.ErrInvalidArgument
}

func (r *ReadOnlySink) Flush() error { return nil }
