package revocation

import (
	"context"
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

// InMemoryTRL is a process-local token revocation list. Entries expire with
// the token they revoke and are swept lazily on write.
type InMemoryTRL struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry
	clock   Clock
}

type InMemoryTRLOption func(*InMemoryTRL)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) InMemoryTRLOption {
	return func(t *InMemoryTRL) {
		if clock != nil {
			t.clock = clock
		}
	}
}

func NewInMemoryTRL(opts ...InMemoryTRLOption) *InMemoryTRL {
	t := &InMemoryTRL{
		revoked: make(map[string]time.Time),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RevokeToken adds a token to the revocation list with TTL.
func (t *InMemoryTRL) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	now := t.clock()

	t.mu.Lock()
	defer t.mu.Unlock()
	for k, exp := range t.revoked {
		if now.After(exp) {
			delete(t.revoked, k)
		}
	}
	t.revoked[jti] = now.Add(ttl)
	return nil
}

// IsRevoked checks if a token is in the revocation list.
func (t *InMemoryTRL) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	exp, ok := t.revoked[jti]
	if !ok {
		return false, nil
	}
	return !t.clock().After(exp), nil
}
