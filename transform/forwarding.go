// Package transform implements stream decorators layered on top of
// buffer.Source/buffer.Sink: forwarding, logging, retrying, a
// read-only guard, compression, hashing, throttling, a peek view, and
// an in-memory pipe. Each decorator follows the same Storage-wrapper
// shape as a logging/rate-limiting blob store wrapper, generalized
// from wrapping a whole store to wrapping a single byte stream.
package transform

import (
	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/iotimeout"
)

// ForwardingSource delegates every call to an inner Source unchanged,
// the way blob.loggingStorage embeds Storage and overrides only the
// methods it cares about — subclasses embed ForwardingSource and
// override just the calls they need to intercept.
type ForwardingSource struct {
	Inner buffer.Source
}

func (f *ForwardingSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	return f.Inner.Read(sink, byteCount)
}
func (f *ForwardingSource) Timeout() *iotimeout.Timeout { return f.Inner.Timeout() }
func (f *ForwardingSource) Close() error                { return f.Inner.Close() }

// ForwardingSink delegates every call to an inner Sink unchanged.
type ForwardingSink struct {
	Inner buffer.Sink
}

func (f *ForwardingSink) Write(source *buffer.Buffer, byteCount int64) error {
	return f.Inner.Write(source, byteCount)
}
func (f *ForwardingSink) Flush() error                { return f.Inner.Flush() }
func (f *ForwardingSink) Timeout() *iotimeout.Timeout { return f.Inner.Timeout() }
func (f *ForwardingSink) Close() error                { return f.Inner.Close() }
