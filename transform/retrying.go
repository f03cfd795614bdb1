package transform

import (
	"time"

	"github.com/kopia/okio-sub006/buffer"
)

// defaultRetryAttempts and defaultRetryDelay mirror a bounded,
// fixed-delay retry shape, generalized from retrying whole blob
// operations to retrying a single stream call.
const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 100 * time.Millisecond
)

// RetryingSource calls a failing Read up to Attempts times in all,
// waiting Delay between attempts, before giving up and returning the
// last error.
type RetryingSource struct {
	ForwardingSource
	Attempts int
	Delay    time.Duration
}

// NewRetryingSource wraps src with the default attempt count and delay.
func NewRetryingSource(src buffer.Source) *RetryingSource {
	return &RetryingSource{ForwardingSource: ForwardingSource{Inner: src}, Attempts: defaultRetryAttempts, Delay: defaultRetryDelay}
}

func (r *RetryingSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	var n int64
	var err error
	for attempt := 0; attempt < r.Attempts; attempt++ {
		n, err = r.Inner.Read(sink, byteCount)
		if err == nil {
			return n, nil
		}
		if attempt < r.Attempts-1 {
			time.Sleep(r.Delay)
		}
	}
	return n, err
}

// RetryingSink calls a failing Write up to Attempts times in all.
type RetryingSink struct {
	ForwardingSink
	Attempts int
	Delay    time.Duration
}

// NewRetryingSink wraps dst with the default attempt count and delay.
func NewRetryingSink(dst buffer.Sink) *RetryingSink {
	return &RetryingSink{ForwardingSink: ForwardingSink{Inner: dst}, Attempts: defaultRetryAttempts, Delay: defaultRetryDelay}
}

func (r *RetryingSink) Write(source *buffer.Buffer, byteCount int64) error {
	snapshot := source.SnapshotN(byteCount)
	var err error
	for attempt := 0; attempt < r.Attempts; attempt++ {
		retry := buffer.New()
		flat := snapshot.Flatten()
		retry.WriteBytes(flat.Bytes())
		err = r.Inner.Write(retry, byteCount)
		if err == nil {
			source.Skip(byteCount)
			return nil
		}
		if attempt < r.Attempts-1 {
			time.Sleep(r.Delay)
		}
	}
	source.Skip(byteCount)
	return err
}
