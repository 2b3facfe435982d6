// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package clockutil provides a mockable source of the engine's time
// input, adapted from the teacher's utils.MockableClock (formerly tied
// to a geth-style interfaces.MockableTimer; here it returns the u32-
// second timestamps the engine's formulas use directly, spec §3/§4.1).
package clockutil

import (
	"sync"
	"time"
)

// Clock is the minimal time source the engine and its tests depend on.
type Clock interface {
	// Now returns the current time as seconds since epoch, truncated to
	// uint32 the way the source chain's time_point_sec does (spec §3:
	// "last_update_time: u32_seconds").
	Now() uint32
}

// MockableClock is a real-or-fixed clock: defaults to wall-clock time
// but can be pinned or advanced for deterministic tests (spec §8's
// determinism requirement makes a controllable clock essential for
// scenario tests).
type MockableClock struct {
	mu   sync.RWMutex
	time time.Time
}

// NewMockableClock returns a clock backed by wall-clock time until Set
// or Advance is called.
func NewMockableClock() *MockableClock {
	return &MockableClock{}
}

// Now returns the current time truncated to a uint32 unix-second count.
func (c *MockableClock) Now() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t := c.time
	if t.IsZero() {
		t = time.Now()
	}
	return uint32(t.Unix())
}

// Set pins the clock to t.
func (c *MockableClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.time = t
}

// Advance moves the pinned time forward by d, pinning to wall-clock
// first if the clock has never been set.
func (c *MockableClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.time.IsZero() {
		c.time = time.Now()
	}
	c.time = c.time.Add(d)
}
