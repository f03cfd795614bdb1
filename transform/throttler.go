package transform

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/kopia/okio-sub006/buffer"
)

// Throttler is a shared, reconfigurable rate-limit budget, generalizing
// blob.writeLimitStorage's atomic remaining-bytes counter (which only
// ever counted down to zero and failed) into an ongoing, refilling
// byte-per-second cap that blocks rather than erroring. A single
// Throttler can be handed to any number of ThrottledSink/ThrottledSource
// wrappers to have them share one budget, and a single stream can be
// wrapped with more than one Throttler at once, each applying its own
// cap independently.
type Throttler struct {
	mu      sync.Mutex
	limiter *rate.Limiter // nil: unthrottled
}

// NewThrottler returns a Throttler capping sustained throughput at
// bytesPerSecond with a burst allowance of burst bytes. A
// bytesPerSecond of 0 or less disables limiting entirely, rather than
// producing a limiter that (per rate.NewLimiter's own semantics for a
// zero rate) would never admit another byte.
func NewThrottler(bytesPerSecond float64, burst int) *Throttler {
	t := &Throttler{}
	t.SetBytesPerSecond(bytesPerSecond, burst)
	return t
}

// SetBytesPerSecond reconfigures the throttle's rate and burst size in
// place, affecting every stream currently wrapped with this Throttler.
// A bytesPerSecond of 0 or less disables limiting.
func (t *Throttler) SetBytesPerSecond(bytesPerSecond float64, burst int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if bytesPerSecond <= 0 {
		t.limiter = nil
		return
	}
	t.limiter = rate.NewLimiter(rate.Limit(bytesPerSecond), burst)
}

// waitToProceed blocks until n bytes are admitted, or returns
// immediately if the Throttler is currently unthrottled.
func (t *Throttler) waitToProceed(ctx context.Context, n int64) error {
	t.mu.Lock()
	l := t.limiter
	t.mu.Unlock()
	if l == nil {
		return nil
	}
	return waitN(ctx, l, n)
}

// waitN reserves n tokens in chunks no larger than the limiter's
// burst size, since rate.Limiter.WaitN rejects a request larger than
// its burst outright rather than spreading it over multiple refills.
func waitN(ctx context.Context, l *rate.Limiter, n int64) error {
	burst := int64(l.Burst())
	if burst <= 0 {
		burst = 1
	}
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := l.WaitN(ctx, int(chunk)); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// ThrottledSink wraps a Sink, blocking each Write on every one of
// throttlers in turn before forwarding. Passing the same Throttler to
// more than one ThrottledSink (or ThrottledSource) makes them share a
// single rate budget; passing more than one Throttler to a single
// ThrottledSink binds that stream to all of their caps at once.
type ThrottledSink struct {
	ForwardingSink
	throttlers []*Throttler
}

// NewThrottledSink wraps dst, subjecting every Write to each of
// throttlers.
func NewThrottledSink(dst buffer.Sink, throttlers ...*Throttler) *ThrottledSink {
	return &ThrottledSink{ForwardingSink: ForwardingSink{Inner: dst}, throttlers: throttlers}
}

// Write blocks until every throttler admits byteCount bytes, then
// forwards the write.
func (t *ThrottledSink) Write(source *buffer.Buffer, byteCount int64) error {
	ctx := context.Background()
	for _, th := range t.throttlers {
		if err := th.waitToProceed(ctx, byteCount); err != nil {
			return err
		}
	}
	return t.Inner.Write(source, byteCount)
}

// ThrottledSource wraps a Source, blocking after each Read on every
// one of throttlers in turn for the number of bytes actually read.
type ThrottledSource struct {
	ForwardingSource
	throttlers []*Throttler
}

// NewThrottledSource wraps src, subjecting every Read to each of
// throttlers.
func NewThrottledSource(src buffer.Source, throttlers ...*Throttler) *ThrottledSource {
	return &ThrottledSource{ForwardingSource: ForwardingSource{Inner: src}, throttlers: throttlers}
}

// Read forwards to the inner Source, then blocks until every
// throttler admits the bytes actually read.
func (t *ThrottledSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
	n, err := t.Inner.Read(sink, byteCount)
	if n > 0 {
		ctx := context.Background()
		for _, th := range t.throttlers {
			if werr := th.waitToProceed(ctx, n); werr != nil {
				return n, werr
			}
		}
	}
	return n, err
}
