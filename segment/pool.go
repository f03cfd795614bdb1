package segment

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultMaxSize is the default cap, in bytes, on how much a Pool
// retains.
const DefaultMaxSize = 65536

// Pool is a thread-safe capped free list of detached Segments,
// generalized from a sync.Pool of whole byte-buffer values with an
// outstanding-count leak counter to fixed-capacity segments with an
// explicit byte-count cap — a plain sync.Pool cannot enforce that
// cap, so the free list here is a simple mutex-guarded slice instead.
//
// A Pool constructed with WithMaxOutstanding additionally gates Take
// behind a golang.org/x/sync/semaphore.Weighted, blocking once that
// many segments are lent out and unreleased, rather than letting
// unbounded concurrent callers grow the live-segment count without
// limit.
type Pool struct {
	mu      sync.Mutex
	maxSize int
	free    []*Segment

	sem *semaphore.Weighted // nil: no admission limit

	outstanding int64
	hits        int64
	misses      int64
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*Pool)

// WithMaxSize overrides the default byte cap on retained segments.
func WithMaxSize(n int) PoolOption {
	return func(p *Pool) { p.maxSize = n }
}

// WithMaxOutstanding bounds the number of segments that may be lent
// out by Take and not yet returned via Recycle, blocking further
// Take calls until one is released. Unset, a Pool admits any number
// of outstanding segments.
func WithMaxOutstanding(n int) PoolOption {
	return func(p *Pool) { p.sem = semaphore.NewWeighted(int64(n)) }
}

// NewPool returns a Pool capped, by default, at DefaultMaxSize bytes.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// shared is the default, process-wide pool used when callers don't
// construct their own — a default singleton, parameterized for
// isolated testing via NewWithPool.
var shared = NewPool()

// Default returns the process-wide shared Pool.
func Default() *Pool { return shared }

// Take returns a fresh-or-recycled Segment with Pos == Limit == 0,
// Owner == true, Shared == false. If the Pool was built with
// WithMaxOutstanding and the cap is currently exhausted, Take blocks
// until a prior segment is Recycled.
func (p *Pool) Take() *Segment {
	if p.sem != nil {
		// Take has no caller-supplied context (it sits on Buffer's hot
		// write path); admission limiting is meant to apply gentle
		// backpressure, not to be cancellable.
		_ = p.sem.Acquire(context.Background(), 1)
	}

	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		p.addMiss()
		return New()
	}
	s := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	p.mu.Unlock()
	p.addHit()
	return s
}

// Recycle detaches s from any neighbors and returns it to the free
// list, unless it is shared or the pool is already at capacity, in
// which case it is dropped for the garbage collector. If the Pool
// has an admission limit, Recycle always releases one slot back to
// it, regardless of whether s itself was retained.
func (p *Pool) Recycle(s *Segment) {
	s.Pop()

	if p.sem != nil {
		defer p.sem.Release(1)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.outstanding--

	if s.Shared {
		return
	}
	if len(p.free)*Size >= p.maxSize {
		return
	}
	s.Pos = 0
	s.Limit = 0
	s.Owner = true
	s.Shared = false
	p.free = append(p.free, s)
}

func (p *Pool) addHit() {
	p.mu.Lock()
	p.hits++
	p.outstanding++
	p.mu.Unlock()
}

func (p *Pool) addMiss() {
	p.mu.Lock()
	p.misses++
	p.outstanding++
	p.mu.Unlock()
}

// Stats reports pool counters, grounded on cas.bufferManager's
// outstandingCount leak-detection field, generalized into an
// always-on counter set instead of a close-time-only warning.
type Stats struct {
	Outstanding  int64
	RetainedSize int
	Hits         int64
	Misses       int64
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Outstanding:  p.outstanding,
		RetainedSize: len(p.free) * Size,
		Hits:         p.hits,
		Misses:       p.misses,
	}
}
