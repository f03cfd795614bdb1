package buffer

import (
	"testing"

	"github.com/kopia/okio-sub006/segment"
)

func TestReadByteEndOfInput(t *testing.T) {
	b := New()
	if _, err := b.ReadByte(); err == nil {
		t.Fatal("expected error reading from empty buffer")
	}
}

func TestReadLongStraddlingSegmentBoundary(t *testing.T) {
	b := New()
	filler := make([]byte, segment.Size-4)
	b.WriteBytes(filler)
	b.WriteLong(0x0102030405060708)

	if _, err := b.ReadByteArray(int64(len(filler))); err != nil {
		t.Fatal(err)
	}
	v, err := b.ReadLong()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x0102030405060708 {
		t.Fatalf("got %x, want 0x0102030405060708", v)
	}
}

func TestReadShortEndOfInput(t *testing.T) {
	b := New()
	b.WriteByte(1)
	if _, err := b.ReadShort(); err == nil {
		t.Fatal("expected end of input reading short from one byte")
	}
}
