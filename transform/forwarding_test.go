package transform

import (
	"testing"

	"github.com/kopia/okio-sub006/buffer"
)

func TestForwardingSourceDelegatesRead(t *testing.T) {
	src := &fixedSource{data: []byte("forwarded"), chunk: 4}
	fs := ForwardingSource{Inner: src}

	sink := buffer.New()
	n, err := fs.Read(sink, 100)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Fatalf("n = %d", n)
	}
	if err := fs.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.closed {
		t.Fatal("expected inner source closed")
	}
}

func TestForwardingSinkDelegatesWrite(t *testing.T) {
	dst := newRecordingSink()
	fsink := ForwardingSink{Inner: dst}

	src := buffer.New()
	src.WriteUtf8("hello")
	if err := fsink.Write(src, 5); err != nil {
		t.Fatal(err)
	}
	if err := fsink.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := fsink.Close(); err != nil {
		t.Fatal(err)
	}
	got, _ := dst.buf.ReadAllUtf8()
	if got != "hello" {
		t.Fatalf("got %q", got)
	}
	if !dst.flushed || !dst.closed {
		t.Fatal("expected flush and close forwarded")
	}
}
