package segment

import (
	"sync"
	"testing"
	"time"
)

func TestPoolTakeRecycleRoundTrip(t *testing.T) {
	p := NewPool()
	s := p.Take()
	if s.Pos != 0 || s.Limit != 0 || !s.Owner || s.Shared {
		t.Fatalf("fresh segment has unexpected state: %+v", s)
	}
	s.Limit = 100
	p.Recycle(s)

	s2 := p.Take()
	if s2 != s {
		t.Fatal("expected the recycled segment to be reused")
	}
	if s2.Pos != 0 || s2.Limit != 0 {
		t.Fatalf("recycled segment not reset: pos=%d limit=%d", s2.Pos, s2.Limit)
	}
}

func TestPoolDropsSharedSegments(t *testing.T) {
	p := NewPool()
	s := New()
	s.Shared = true
	p.Recycle(s)
	if len(p.free) != 0 {
		t.Fatal("shared segments must never be retained")
	}
}

func TestPoolCapsRetainedBytes(t *testing.T) {
	p := NewPool(WithMaxSize(Size))
	for i := 0; i < 5; i++ {
		p.Recycle(New())
	}
	if stats := p.Stats(); stats.RetainedSize > Size {
		t.Fatalf("retained %d bytes, want <= %d", stats.RetainedSize, Size)
	}
}

func TestPoolWithMaxOutstandingBlocksUntilRecycle(t *testing.T) {
	p := NewPool(WithMaxOutstanding(1))

	s := p.Take()

	took := make(chan *Segment, 1)
	go func() { took <- p.Take() }()

	select {
	case <-took:
		t.Fatal("Take should have blocked with the outstanding cap exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	p.Recycle(s)

	select {
	case s2 := <-took:
		if s2 == nil {
			t.Fatal("expected a segment once the cap freed up")
		}
	case <-time.After(time.Second):
		t.Fatal("Take did not unblock after Recycle released the outstanding slot")
	}
}

func TestPoolConcurrentTakeRecycle(t *testing.T) {
	p := NewPool(WithMaxSize(64 * Size))

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				s := p.Take()
				s.Limit = 10
				p.Recycle(s)
			}
		}()
	}
	wg.Wait()

	if stats := p.Stats(); stats.Outstanding != 0 {
		t.Fatalf("outstanding = %d, want 0 after all goroutines finished", stats.Outstanding)
	}
}
