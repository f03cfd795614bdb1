package transform

import (
	"testing"

	"github.com/klauspost/compress/flate"

	"github.com/kopia/okio-sub006/buffer"
)

func TestDeflateRoundTrip(t *testing.T) {
	compressed := newRecordingSink()
	ds, err := NewDeflateSink(compressed, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}

	src := buffer.New()
	src.WriteUtf8("deflate me please, this is a reasonably compressible payload payload payload")
	if err := ds.Write(src, src.Size()); err != nil {
		t.Fatal(err)
	}
	if err := ds.Close(); err != nil {
		t.Fatal(err)
	}

	compressedBuf := buffer.New()
	if err := compressedBuf.Write(compressed.buf, compressed.buf.Size()); err != nil {
		t.Fatal(err)
	}

	inflate := NewDeflateSource(compressedBuf)
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
	if got != "deflate me please, this is a reasonably compressible payload payload payload" {
		t.Fatalf("got %q", got)
	}
}
