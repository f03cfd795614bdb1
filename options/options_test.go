package options

import (
	"testing"

	"github.com/kopia/okio-sub006/bytestring"
)

type fakeBuffer struct {
	data []byte
	pos  int64
}

func (f *fakeBuffer) Size() int64      { return int64(len(f.data)) - f.pos }
func (f *fakeBuffer) Get(p int64) byte { return f.data[f.pos+p] }
func (f *fakeBuffer) Skip(n int64)     { f.pos += n }

func TestSelectBasic(t *testing.T) {
	// "cat" (index 0) is a prefix of "caterpillar" (index 2); the
	// lower-indexed candidate wins even though "caterpillar" actually
	// matches more of the input.
	o, err := New(bytestring.OfString("cat"), bytestring.OfString("dog"), bytestring.OfString("caterpillar"))
	if err != nil {
		t.Fatal(err)
	}
	buf := &fakeBuffer{data: []byte("caterpillar!")}
	idx := Select(buf, o)
	if idx != 0 {
		t.Fatalf("idx = %d, want 0 (cat)", idx)
	}
	if buf.pos != 3 {
		t.Fatalf("consumed %d, want 3", buf.pos)
	}
}

func TestSelectShorterPrefixWins(t *testing.T) {
	o, err := New(bytestring.OfString("cat"), bytestring.OfString("caterpillar"))
	if err != nil {
		t.Fatal(err)
	}
	buf := &fakeBuffer{data: []byte("catfish")}
	idx := Select(buf, o)
	if idx != 0 {
		t.Fatalf("idx = %d, want 0 (cat)", idx)
	}
	if buf.pos != 3 {
		t.Fatalf("consumed %d, want 3", buf.pos)
	}
}

func TestSelectNoMatch(t *testing.T) {
	o, err := New(bytestring.OfString("cat"), bytestring.OfString("dog"))
	if err != nil {
		t.Fatal(err)
	}
	buf := &fakeBuffer{data: []byte("fish")}
	idx := Select(buf, o)
	if idx != -1 {
		t.Fatalf("idx = %d, want -1", idx)
	}
	if buf.pos != 0 {
		t.Fatalf("consumed %d, want 0", buf.pos)
	}
}

func TestProbeReportsNeedMoreOnDanglingPrefix(t *testing.T) {
	o, err := New(bytestring.OfString("cat"), bytestring.OfString("caterpillar"))
	if err != nil {
		t.Fatal(err)
	}
	buf := &fakeBuffer{data: []byte("cate")}
	result, consumed, needMore := Probe(buf, o)
	if !needMore {
		t.Fatal("expected needMore since 'caterpillar' could still match")
	}
	if result != 0 || consumed != 3 {
		t.Fatalf("result=%d consumed=%d, want 0,3 (best match so far is 'cat')", result, consumed)
	}
	if buf.pos != 0 {
		t.Fatal("Probe must not consume")
	}
}

func TestProbeResolvesOnceNoLongerAmbiguous(t *testing.T) {
	o, err := New(bytestring.OfString("cat"), bytestring.OfString("caterpillar"))
	if err != nil {
		t.Fatal(err)
	}
	buf := &fakeBuffer{data: []byte("catfish")}
	_, _, needMore := Probe(buf, o)
	if needMore {
		t.Fatal("'catf' cannot extend to 'caterpillar', should not need more")
	}
}

func TestNewRejectsEmptyAndDuplicate(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error for empty options")
	}
	if _, err := New(bytestring.OfString("")); err == nil {
		t.Fatal("expected error for empty value")
	}
	if _, err := New(bytestring.OfString("a"), bytestring.OfString("a")); err == nil {
		t.Fatal("expected error for duplicate value")
	}
}
