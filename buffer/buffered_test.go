package buffer

import (
	"testing"

	"github.com/kopia/okio-sub006/bytestring"
	"github.com/kopia/okio-sub006/iotimeout"
	"github.com/kopia/okio-sub006/options"
)

// chunkedSource serves a fixed payload in bounded-size reads, so
// BufferedSource.fill is exercised more than once per test.
type chunkedSource struct {
	data    []byte
	pos     int
	chunk   int
	timeout iotimeout.Timeout
}

func (c *chunkedSource) Read(sink *Buffer, byteCount int64) (int64, error) {
	if c.pos >= len(c.data) {
		return -1, nil
	}
	n := c.chunk
	if n > len(c.data)-c.pos {
		n = len(c.data) - c.pos
	}
	if int64(n) > byteCount {
		n = int(byteCount)
	}
	sink.WriteBytes(c.data[c.pos : c.pos+n])
	c.pos += n
	return int64(n), nil
}

func (c *chunkedSource) Timeout() *iotimeout.Timeout { return &c.timeout }
func (c *chunkedSource) Close() error                { return nil }

type recordingSink struct {
	buf     Buffer
	flushed bool
	closed  bool
	timeout iotimeout.Timeout
}

func newRecordingSink() *recordingSink { return &recordingSink{buf: *New()} }

func (r *recordingSink) Write(source *Buffer, byteCount int64) error {
	return r.buf.Write(source, byteCount)
}
func (r *recordingSink) Flush() error                  { r.flushed = true; return nil }
func (r *recordingSink) Timeout() *iotimeout.Timeout   { return &r.timeout }
func (r *recordingSink) Close() error                  { r.closed = true; return nil }

func TestBufferedSourceRequireAndReadByteArray(t *testing.T) {
	src := &chunkedSource{data: []byte("hello buffered world"), chunk: 3}
	bs := NewBufferedSource(src)
	got, err := bs.ReadByteArray(5)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
	rest, err := bs.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if string(rest) != " buffered world" {
		t.Fatalf("rest = %q", rest)
	}
}

func TestBufferedSourceReadUtf8Line(t *testing.T) {
	src := &chunkedSource{data: []byte("one\ntwo\nthree"), chunk: 2}
	bs := NewBufferedSource(src)
	line, ok, err := bs.ReadUtf8Line()
	if err != nil || !ok || line != "one" {
		t.Fatalf("line=%q ok=%v err=%v", line, ok, err)
	}
	line, ok, err = bs.ReadUtf8Line()
	if err != nil || !ok || line != "two" {
		t.Fatalf("line=%q ok=%v err=%v", line, ok, err)
	}
	line, ok, err = bs.ReadUtf8Line()
	if err != nil || !ok || line != "three" {
		t.Fatalf("line=%q ok=%v err=%v", line, ok, err)
	}
}

func TestBufferedSourceClosedTwiceIsNoop(t *testing.T) {
	src := &chunkedSource{data: []byte("x"), chunk: 1}
	bs := NewBufferedSource(src)
	if err := bs.Close(); err != nil {
		t.Fatal(err)
	}
	if err := bs.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBufferedSinkEmitCompleteSegmentsKeepsTail(t *testing.T) {
	dst := newRecordingSink()
	bs := NewBufferedSink(dst)
	bs.WriteUtf8("short write")
	if err := bs.EmitCompleteSegments(); err != nil {
		t.Fatal(err)
	}
	// a single short write lives entirely in the tail segment, so
	// nothing should have been pushed downstream yet.
	if dst.buf.Size() != 0 {
		t.Fatalf("downstream got %d bytes, want 0 before flush", dst.buf.Size())
	}
	if err := bs.Flush(); err != nil {
		t.Fatal(err)
	}
	if !dst.flushed {
		t.Fatal("expected downstream flush")
	}
	got, _ := dst.buf.ReadAllUtf8()
	if got != "short write" {
		t.Fatalf("downstream got %q", got)
	}
}

func TestBufferedSinkCloseEmitsAndCloses(t *testing.T) {
	dst := newRecordingSink()
	bs := NewBufferedSink(dst)
	bs.WriteUtf8("payload")
	if err := bs.Close(); err != nil {
		t.Fatal(err)
	}
	if !dst.closed {
		t.Fatal("expected downstream closed")
	}
	got, _ := dst.buf.ReadAllUtf8()
	if got != "payload" {
		t.Fatalf("downstream got %q", got)
	}
	if err := bs.Close(); err != nil {
		t.Fatal("second close should be a no-op, got", err)
	}
}

func TestBufferedSourceSelect(t *testing.T) {
	src := &chunkedSource{data: []byte("caterpillar rest"), chunk: 2}
	bs := NewBufferedSource(src)
	o, err := options.New(bytestring.OfString("cat"), bytestring.OfString("caterpillar"))
	if err != nil {
		t.Fatal(err)
	}
	idx, err := bs.Select(o)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 0 {
		t.Fatalf("idx = %d, want 0 (cat)", idx)
	}
}
