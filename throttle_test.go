package typerighter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottleDefaults(t *testing.T) {
	th := NewThrottle(0, 0)
	assert.Equal(t, 500*time.Millisecond, th.Delay())
}

func TestThrottleBackoffGrows(t *testing.T) {
	th := NewThrottle(100*time.Millisecond, 2*time.Second)
	assert.Equal(t, 100*time.Millisecond, th.Delay())

	first := th.Backoff()
	second := th.Backoff()
	assert.Greater(t, first, 100*time.Millisecond, "an error must grow the window")
	assert.Greater(t, second, first)
	assert.Equal(t, second, th.Delay())
}

func TestThrottleBackoffCapped(t *testing.T) {
	th := NewThrottle(100*time.Millisecond, 300*time.Millisecond)
	for i := 0; i < 10; i++ {
		th.Backoff()
	}
	assert.Equal(t, 300*time.Millisecond, th.Delay())
}

func TestThrottleResetRestoresInitial(t *testing.T) {
	th := NewThrottle(100*time.Millisecond, 2*time.Second)
	th.Backoff()
	th.Backoff()
	th.Reset()
	assert.Equal(t, 100*time.Millisecond, th.Delay())

	// After a reset the escalation starts over.
	assert.Equal(t, 200*time.Millisecond, th.Backoff())
}
