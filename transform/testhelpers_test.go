package transform

import (
	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/iotimeout"
)

// fixedSource hands back data in chunks no larger than chunk bytes
// per call, reporting -1 once exhausted.
type fixedSource struct {
	data    []byte
	pos     int
	chunk   int
	timeout iotimeout.Timeout
	closed  bool
}

func (f *fixedSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	if f.pos >= len(f.data) {
		return -1, nil
	}
	n := f.chunk
	if n <= 0 || n > len(f.data)-f.pos {
		n = len(f.data) - f.pos
	}
	if int64(n) > byteCount {
		n = int(byteCount)
	}
	sink.WriteBytes(f.data[f.pos : f.pos+n])
	f.pos += n
	return int64(n), nil
}

func (f *fixedSource) Timeout() *iotimeout.Timeout { return &f.timeout }
func (f *fixedSource) Close() error                { f.closed = true; return nil }

// failingSource fails the first failCount calls, then delegates to
// inner.
type failingSource struct {
	inner     buffer.Source
	failCount int
	calls     int
}

func (f *failingSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	f.calls++
	if f.calls <= f.failCount {
		return 0, errTransient
	}
	return f.inner.Read(sink, byteCount)
}
func (f *failingSource) Timeout() *iotimeout.Timeout { return f.inner.Timeout() }
func (f *failingSource) Close() error                { return f.inner.Close() }

// recordingSink appends every write to an internal Buffer and tracks
// Flush/Close calls.
type recordingSink struct {
	buf     *buffer.Buffer
	flushed bool
	closed  bool
	timeout iotimeout.Timeout
}

func newRecordingSink() *recordingSink { return &recordingSink{buf: buffer.New()} }

func (r *recordingSink) Write(source *buffer.Buffer, byteCount int64) error {
	return r.buf.Write(source, byteCount)
}
func (r *recordingSink) Flush() error                { r.flushed = true; return nil }
func (r *recordingSink) Timeout() *iotimeout.Timeout { return &r.timeout }
func (r *recordingSink) Close() error                { r.closed = true; return nil }

// failingSink fails the first failCount calls, then delegates to inner.
type failingSink struct {
	inner     buffer.Sink
	failCount int
	calls     int
}

func (f *failingSink) Write(source *buffer.Buffer, byteCount int64) error {
	f.calls++
	if f.calls <= f.failCount {
		source.Skip(byteCount)
		return errTransient
	}
	return f.inner.Write(source, byteCount)
}
func (f *failingSink) Flush() error                { return f.inner.Flush() }
func (f *failingSink) Timeout() *iotimeout.Timeout { return f.inner.Timeout() }
func (f *failingSink) Close() error                { return f.inner.Close() }

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

const errTransient = simpleErr("transient failure")
