package transform

import (
	"testing"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/ioerr"
)

func TestReadOnlySinkRejectsWrite(t *testing.T) {
	dst := newRecordingSink()
	ro := NewReadOnlySink(dst)

	src := buffer.New()
	src.WriteUtf8("nope")
	if err := ro.Write(src, src.Size()); err != ioerr.ErrInvalidArgument {
		t.Fatalf("err = %v", err)
	}
	if dst.buf.Size() != 0 {
		t.Fatal("expected nothing forwarded")
	}
}

func TestReadOnlySinkForwardsCloseAndTimeout(t *testing.T) {
	dst := newRecordingSink()
	ro := NewReadOnlySink(dst)

	if ro.Timeout() == nil {
		t.Fatal("expected non-nil timeout")
	}
	if err := ro.Close(); err != nil {
		t.Fatal(err)
	}
	if !dst.closed {
		t.Fatal("expected close forwarded")
	}
}
