// Package testutil carries shared test fixtures: a frozen wall clock so
// date-window rendering is byte-stable across runs.
package testutil

import (
	"sync"
	"time"
)

// FrozenTime is the reference instant tests anchor date windows to.
// "Last 7 days" rendered against it always starts at 2026-08-19.
var FrozenTime = time.Date(2026, time.August, 26, 12, 0, 0, 0, time.UTC)

// FixedClock is a thread-safe wall clock stuck at a chosen instant
// until advanced explicitly.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// NewFrozenClock creates a clock frozen at FrozenTime.
func NewFrozenClock() *FixedClock {
	return NewFixedClock(FrozenTime)
}

// Now returns the clock's current instant. Matches the signature of
// time.Now so it can be injected wherever a clock function is accepted.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
