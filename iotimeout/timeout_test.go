package iotimeout

import (
	"sync"
	"testing"
	"time"

	"github.com/kopia/okio-sub006/internal/ioerr"
)

func TestThrowIfReachedNoLimit(t *testing.T) {
	to := None()
	if err := to.ThrowIfReached(); err != nil {
		t.Fatalf("unexpected error with no limit set: %v", err)
	}
}

func TestThrowIfReachedPastDeadline(t *testing.T) {
	to := None().Deadline(time.Now().Add(-time.Second))
	if err := to.ThrowIfReached(); err != ioerr.ErrTimeout {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestEarlierOfDeadlineAndPerOpTimeoutApplies(t *testing.T) {
	to := None().
		Deadline(time.Now().Add(time.Hour)).
		SetTimeout(10 * time.Millisecond)

	mu := &sync.Mutex{}
	cond := sync.NewCond(mu)
	mu.Lock()
	err := to.WaitUntilNotified(cond)
	mu.Unlock()
	if err != ioerr.ErrTimeout {
		t.Fatalf("expected per-op timeout to win, got %v", err)
	}
}

func TestWaitUntilNotifiedWakesOnBroadcast(t *testing.T) {
	to := None().SetTimeout(time.Second)
	mu := &sync.Mutex{}
	cond := sync.NewCond(mu)

	go func() {
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		cond.Broadcast()
		mu.Unlock()
	}()

	mu.Lock()
	err := to.WaitUntilNotified(cond)
	mu.Unlock()
	if err != nil {
		t.Fatalf("expected normal wakeup, got %v", err)
	}
}
