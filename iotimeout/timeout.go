// Package iotimeout implements the deadline and per-operation timeout
// contract shared by every Source and Sink, and the cooperative
// condition-variable wait it backs, generalizing the timeout-driven
// flush-loop deadline pattern into a reusable type.
package iotimeout

import (
	"sync"
	"time"

	"github.com/kopia/okio-sub006/internal/ioerr"
)

// Timeout carries an optional absolute deadline and an optional
// per-operation duration. Both default unset (zero value means "no
// limit").
type Timeout struct {
	mu       sync.Mutex
	deadline time.Time
	hasDL    bool
	timeout  time.Duration
}

// None returns a Timeout with no deadline and no per-op timeout.
func None() *Timeout { return &Timeout{} }

// Clone returns a copy of t, safe to mutate independently.
func (t *Timeout) Clone() *Timeout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return &Timeout{deadline: t.deadline, hasDL: t.hasDL, timeout: t.timeout}
}

// Deadline sets an absolute deadline.
func (t *Timeout) Deadline(at time.Time) *Timeout {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deadline = at
	t.hasDL = true
	return t
}

// ClearDeadline removes the absolute deadline.
func (t *Timeout) ClearDeadline() *Timeout {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hasDL = false
	t.deadline = time.Time{}
	return t
}

// SetTimeout sets a per-operation duration.
func (t *Timeout) SetTimeout(d time.Duration) *Timeout {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = d
	return t
}

// ClearTimeout removes the per-operation duration.
func (t *Timeout) ClearTimeout() *Timeout {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timeout = 0
	return t
}

// deadlineNow returns the earlier of the absolute deadline and
// now+per-op-timeout, and whether any limit applies at all.
func (t *Timeout) deadlineNow() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var candidates []time.Time
	if t.hasDL {
		candidates = append(candidates, t.deadline)
	}
	if t.timeout > 0 {
		candidates = append(candidates, time.Now().Add(t.timeout))
	}
	if len(candidates) == 0 {
		return time.Time{}, false
	}
	earliest := candidates[0]
	for _, c := range candidates[1:] {
		if c.Before(earliest) {
			earliest = c
		}
	}
	return earliest, true
}

// ThrowIfReached returns ioerr.ErrTimeout if the deadline or per-op
// timeout has already elapsed.
func (t *Timeout) ThrowIfReached() error {
	dl, ok := t.deadlineNow()
	if !ok {
		return nil
	}
	if !time.Now().Before(dl) {
		return ioerr.ErrTimeout
	}
	return nil
}

// WaitUntilNotified waits on cond, honoring both the deadline and the
// per-op timeout, whichever is earlier. The caller must hold cond.L.
// Returns when notified normally; returns ioerr.ErrTimeout if the
// cutoff elapses first.
func (t *Timeout) WaitUntilNotified(cond *sync.Cond) error {
	dl, ok := t.deadlineNow()
	if !ok {
		cond.Wait()
		return nil
	}

	remaining := time.Until(dl)
	if remaining <= 0 {
		return ioerr.ErrTimeout
	}

	done := make(chan struct{})
	timer := time.AfterFunc(remaining, func() {
		cond.L.Lock()
		close(done)
		cond.Broadcast()
		cond.L.Unlock()
	})
	defer timer.Stop()

	cond.Wait()

	select {
	case <-done:
		return ioerr.ErrTimeout
	default:
		return nil
	}
}
