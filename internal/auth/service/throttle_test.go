package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/nandha2804/TMS/internal/errors"
)

func TestLoginThrottle_BlocksAfterMaxAttempts(t *testing.T) {
	throttle := NewLoginThrottle(5, time.Hour)
	email := "victim@example.com"

	for i := 0; i < 5; i++ {
		require.NoError(t, throttle.Allow(email))
		throttle.RecordFailure(email)
	}

	err := throttle.Allow(email)
	assert.ErrorIs(t, err, autherror.ErrTooManyLoginAttempts)

	// Other emails are unaffected.
	assert.NoError(t, throttle.Allow("someone-else@example.com"))
}

func TestLoginThrottle_WindowElapsedResets(t *testing.T) {
	throttle := NewLoginThrottle(5, time.Hour)
	email := "victim@example.com"

	current := time.Now()
	throttle.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		throttle.RecordFailure(email)
	}
	require.ErrorIs(t, throttle.Allow(email), autherror.ErrTooManyLoginAttempts)

	// After the window the counter is discarded and attempts are allowed.
	current = current.Add(time.Hour + time.Second)
	assert.NoError(t, throttle.Allow(email))

	// The next failure starts a fresh window with count 1.
	throttle.RecordFailure(email)
	assert.NoError(t, throttle.Allow(email))
}

func TestLoginThrottle_ClearRemovesCounter(t *testing.T) {
	throttle := NewLoginThrottle(5, time.Hour)
	email := "victim@example.com"

	for i := 0; i < 5; i++ {
		throttle.RecordFailure(email)
	}
	require.ErrorIs(t, throttle.Allow(email), autherror.ErrTooManyLoginAttempts)

	throttle.Clear(email)
	assert.NoError(t, throttle.Allow(email))
}

func TestLoginThrottle_SweepPurgesExpired(t *testing.T) {
	throttle := NewLoginThrottle(5, time.Hour)

	current := time.Now()
	throttle.now = func() time.Time { return current }

	throttle.RecordFailure("old@example.com")

	current = current.Add(30 * time.Minute)
	throttle.RecordFailure("recent@example.com")

	current = current.Add(31 * time.Minute)
	throttle.Sweep()

	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	assert.NotContains(t, throttle.attempts, "old@example.com")
	assert.Contains(t, throttle.attempts, "recent@example.com")
}

func TestLoginThrottle_ConcurrentFailures(t *testing.T) {
	throttle := NewLoginThrottle(100, time.Hour)
	email := "burst@example.com"

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				throttle.RecordFailure(email)
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	assert.Equal(t, 100, throttle.attempts[email].count)
}
