package transform

import (
	"testing"
	"time"

	"github.com/kopia/okio-sub006/buffer"
)

func TestPipeDeliversInOrder(t *testing.T) {
	p := NewPipe(1024)
	sink := p.Sink()
	src := p.Source()

	payload := buffer.New()
	payload.WriteUtf8("pipe payload")
	if err := sink.Write(payload, payload.Size()); err != nil {
		t.Fatal(err)
	}

	out := buffer.New()
	n, err := src.Read(out, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("pipe payload")) {
		t.Fatalf("n = %d", n)
	}
	got, _ := out.ReadAllUtf8()
	if got != "pipe payload" {
		t.Fatalf("got %q", got)
	}
}

func TestPipeReadReturnsEOFAfterSinkClosedAndDrained(t *testing.T) {
	p := NewPipe(1024)
	sink := p.Sink()
	src := p.Source()

	payload := buffer.New()
	payload.WriteUtf8("last bytes")
	if err := sink.Write(payload, payload.Size()); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	out := buffer.New()
	n, err := src.Read(out, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len("last bytes")) {
		t.Fatalf("n = %d", n)
	}

	n, err = src.Read(out, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if n != -1 {
		t.Fatalf("expected eof, got n = %d", n)
	}
}

func TestPipeWriteBlocksUntilDrainedThenDeliversAll(t *testing.T) {
	p := NewPipe(8)
	sink := p.Sink()
	src := p.Source()

	payload := buffer.New()
	payload.WriteUtf8("sixteen letters!")

	done := make(chan error, 1)
	go func() { done <- sink.Write(payload, payload.Size()) }()

	out := buffer.New()
	deadline := time.After(2 * time.Second)
	total := int64(0)
	for total < int64(len("sixteen letters!")) {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for pipe data")
		default:
		}
		n, err := src.Read(out, 4)
		if err != nil {
			t.Fatal(err)
		}
		if n > 0 {
			total += n
		}
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	got, _ := out.ReadAllUtf8()
	if got != "sixteen letters!" {
		t.Fatalf("got %q", got)
	}
}
