package service

import (
	"context"
	"sync"
	"time"

	autherror "github.com/nandha2804/TMS/internal/errors"
)

type loginAttempt struct {
	count        int
	firstAttempt time.Time
}

// LoginThrottle tracks consecutive failed login attempts per normalized email
// within a rolling window. State is process-local; a multi-instance deployment
// needs a shared store behind the same methods.
type LoginThrottle struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string]*loginAttempt

	now func() time.Time
}

func NewLoginThrottle(maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string]*loginAttempt),
		now:         time.Now,
	}
}

// Allow reports whether a login attempt for the email may proceed. Once the
// attempt cap is reached the email stays blocked until the window elapses;
// an elapsed window discards the counter so a fresh one starts on the next
// failure.
func (t *LoginThrottle) Allow(email string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempt, ok := t.attempts[email]
	if !ok || attempt.count < t.maxAttempts {
		return nil
	}

	if t.now().Sub(attempt.firstAttempt) < t.window {
		return autherror.ErrTooManyLoginAttempts
	}

	delete(t.attempts, email)

	return nil
}

// RecordFailure increments the counter for the email, creating it on the
// first failure.
func (t *LoginThrottle) RecordFailure(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	attempt, ok := t.attempts[email]
	if !ok {
		t.attempts[email] = &loginAttempt{count: 1, firstAttempt: t.now()}
		return
	}

	attempt.count++
}

// Clear removes the counter for the email, called on successful login.
func (t *LoginThrottle) Clear(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.attempts, email)
}

// Sweep removes counters whose window has elapsed, bounding memory growth
// from abandoned attempt histories.
func (t *LoginThrottle) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.window)
	for email, attempt := range t.attempts {
		if attempt.firstAttempt.Before(cutoff) {
			delete(t.attempts, email)
		}
	}
}

// Start runs a periodic sweep until the context is cancelled.
func (t *LoginThrottle) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Sweep()
			}
		}
	}()
}
