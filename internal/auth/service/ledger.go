package service

import "sync"

// RefreshTokenLedger records refresh tokens that have already been exchanged.
// A consumed token is never accepted again, regardless of its remaining
// nominal validity. No expiry sweep is needed: entries outlive their token's
// lifetime, after which signature/expiry checks reject it anyway.
type RefreshTokenLedger struct {
	mu       sync.RWMutex
	consumed map[string]struct{}
}

func NewRefreshTokenLedger() *RefreshTokenLedger {
	return &RefreshTokenLedger{consumed: make(map[string]struct{})}
}

func (l *RefreshTokenLedger) Consumed(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.consumed[token]

	return ok
}

func (l *RefreshTokenLedger) MarkConsumed(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.consumed[token] = struct{}{}
}
