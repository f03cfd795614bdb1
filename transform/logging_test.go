package transform

import (
	"fmt"
	"testing"

	"github.com/kopia/okio-sub006/buffer"
)

type recordingLogSink struct {
	debugs []string
	warns  []string
}

func (r *recordingLogSink) Debugf(format string, args ...interface{}) {
	r.debugs = append(r.debugs, fmt.Sprintf(format, args...))
}
func (r *recordingLogSink) Warningf(format string, args ...interface{}) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func TestLoggingSourceLogsEachRead(t *testing.T) {
	src := &fixedSource{data: []byte("abcdef"), chunk: 3}
	ls := NewLoggingSource(src, "test-source")
	rec := &recordingLogSink{}
	ls.log.SetSink(rec)

	sink := buffer.New()
	if _, err := ls.Read(sink, 100); err != nil {
		t.Fatal(err)
	}
	if len(rec.debugs) != 1 {
		t.Fatalf("debugs = %v", rec.debugs)
	}
}

func TestLoggingSinkLogsWrite(t *testing.T) {
	dst := newRecordingSink()
	ls := NewLoggingSink(dst, "test-sink")
	rec := &recordingLogSink{}
	ls.log.SetSink(rec)

	src := buffer.New()
	src.WriteUtf8("xyz")
	if err := ls.Write(src, 3); err != nil {
		t.Fatal(err)
	}
	if len(rec.debugs) != 1 {
		t.Fatalf("debugs = %v", rec.debugs)
	}
}
