package typerighter

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Throttle computes the quiet period that must elapse after the last edit
// before a validation request may be dispatched. Request failures grow
// the window multiplicatively up to Max; a success shrinks it back to
// Initial. Safe for concurrent use.
type Throttle struct {
	mu      sync.Mutex
	initial time.Duration
	max     time.Duration
	current time.Duration
	engine  *backoff.ExponentialBackOff
}

// NewThrottle creates a controller with the given initial and maximum
// windows. Non-positive arguments fall back to 500ms and 16s.
func NewThrottle(initial, max time.Duration) *Throttle {
	if initial <= 0 {
		initial = 500 * time.Millisecond
	}
	if max <= 0 {
		max = 16 * time.Second
	}
	t := &Throttle{initial: initial, max: max, current: initial}
	t.engine = backoff.NewExponentialBackOff()
	t.engine.InitialInterval = initial
	t.engine.MaxInterval = max
	t.engine.Multiplier = 2
	t.engine.RandomizationFactor = 0
	t.engine.MaxElapsedTime = 0 // retries are unbounded
	t.rewind()
	return t
}

// rewind restarts the engine and consumes the baseline interval, so the
// next escalation actually grows the window. Callers hold no lock or the
// mutex; rewind itself takes neither.
func (t *Throttle) rewind() {
	t.engine.Reset()
	t.engine.NextBackOff()
}

// Delay returns the current quiet-period length.
func (t *Throttle) Delay() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Backoff grows the window after a request failure and returns the new
// delay, capped at the maximum.
func (t *Throttle) Backoff() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := t.engine.NextBackOff()
	if next < 0 || next > t.max {
		next = t.max
	}
	t.current = next
	return next
}

// Reset shrinks the window back to the initial delay after a success.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rewind()
	t.current = t.initial
}
