package transform

import (
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/kopia/okio-sub006/buffer"
)

func TestGzipRoundTrip(t *testing.T) {
	compressed := newRecordingSink()
	gs, err := NewGzipSink(compressed, gzip.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}

	src := buffer.New()
	src.WriteUtf8("gzip round trip payload with some repetition repetition repetition")
	if err := gs.Write(src, src.Size()); err != nil {
		t.Fatal(err)
	}
	if err := gs.Close(); err != nil {
		t.Fatal(err)
	}

	compressedBuf := buffer.New()
	if err := compressedBuf.Write(compressed.buf, compressed.buf.Size()); err != nil {
		t.Fatal(err)
	}

	inflate, err := NewGzipSource(compressedBuf)
	if err != nil {
		t.Fatal(err)
	}
	out := buffer.New()
	for {
		n, err := inflate.Read(out, 4096)
		if err != nil {
			t.Fatal(err)
		}
		if n < 0 {
			break
		}
	}
	got, _ := out.ReadAllUtf8()
	if got != "gzip round trip payload with some repetition repetition repetition" {
		t.Fatalf("got %q", got)
	}
}
