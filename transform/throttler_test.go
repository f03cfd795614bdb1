package transform

import (
	"testing"
	"time"

	"github.com/kopia/okio-sub006/buffer"
)

func TestThrottledSinkForwardsAllBytes(t *testing.T) {
	dst := newRecordingSink()
	th := NewThrottler(1<<30, 1<<20)
	ts := NewThrottledSink(dst, th)

	src := buffer.New()
	src.WriteUtf8("throttled payload")
	if err := ts.Write(src, src.Size()); err != nil {
		t.Fatal(err)
	}
	got, _ := dst.buf.ReadAllUtf8()
	if got != "throttled payload" {
		t.Fatalf("got %q", got)
	}
}

func TestThrottledSinkSpreadsOverMultipleChunksWhenLargerThanBurst(t *testing.T) {
	dst := newRecordingSink()
	th := NewThrottler(1000, 4)
	ts := NewThrottledSink(dst, th)

	src := buffer.New()
	payload := make([]byte, 20)
	for i := range payload {
		payload[i] = byte('a' + i%26)
	}
	src.WriteBytes(payload)

	start := time.Now()
	if err := ts.Write(src, int64(len(payload))); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) <= 0 {
		t.Fatal("expected some elapsed time")
	}
	if dst.buf.Size() != int64(len(payload)) {
		t.Fatalf("size = %d", dst.buf.Size())
	}
}

func TestThrottlerZeroRateDisablesLimiting(t *testing.T) {
	dst := newRecordingSink()
	th := NewThrottler(0, 0)
	ts := NewThrottledSink(dst, th)

	src := buffer.New()
	payload := make([]byte, 1<<20)
	src.WriteBytes(payload)

	done := make(chan error, 1)
	go func() { done <- ts.Write(src, int64(len(payload))) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("write blocked despite a zero bytesPerSecond, which should disable limiting")
	}
}

func TestThrottlerSharedAcrossMultipleSinks(t *testing.T) {
	th := NewThrottler(1<<30, 1<<20)
	dstA := newRecordingSink()
	dstB := newRecordingSink()
	tsA := NewThrottledSink(dstA, th)
	tsB := NewThrottledSink(dstB, th)

	src := buffer.New()
	src.WriteUtf8("a")
	if err := tsA.Write(src, src.Size()); err != nil {
		t.Fatal(err)
	}
	src.WriteUtf8("b")
	if err := tsB.Write(src, src.Size()); err != nil {
		t.Fatal(err)
	}

	gotA, _ := dstA.buf.ReadAllUtf8()
	gotB, _ := dstB.buf.ReadAllUtf8()
	if gotA != "a" || gotB != "b" {
		t.Fatalf("got %q, %q", gotA, gotB)
	}
}

func TestThrottledSinkMultipleThrottlersAllApply(t *testing.T) {
	dst := newRecordingSink()
	slow := NewThrottler(1000, 4)
	fast := NewThrottler(1<<30, 1<<20)
	ts := NewThrottledSink(dst, slow, fast)

	src := buffer.New()
	payload := make([]byte, 20)
	src.WriteBytes(payload)
	if err := ts.Write(src, int64(len(payload))); err != nil {
		t.Fatal(err)
	}
	if dst.buf.Size() != int64(len(payload)) {
		t.Fatalf("size = %d", dst.buf.Size())
	}
}
