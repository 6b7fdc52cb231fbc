package audit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is shedding events.
var ErrCircuitOpen = errors.New("audit sink circuit open")

// BreakerSink stops calling a failing sink for a cooldown period so an
// unavailable broker does not add latency to every request.
type BreakerSink struct {
	next Sink

	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	failures  int
	openUntil time.Time
	now       func() time.Time
}

// NewBreakerSink wraps next. threshold is the number of consecutive failures
// that opens the circuit; cooldown is how long it stays open.
func NewBreakerSink(next Sink, threshold int, cooldown time.Duration) *BreakerSink {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &BreakerSink{
		next:      next,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

func (b *BreakerSink) Append(ctx context.Context, event Event) error {
	if !b.allow() {
		return ErrCircuitOpen
	}
	if err := b.next.Append(ctx, event); err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

// IsOpen returns true if the circuit is currently open.
func (b *BreakerSink) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now().Before(b.openUntil)
}

func (b *BreakerSink) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	// After the cooldown one attempt is let through (half-open); a failure
	// re-opens immediately because failures is still at the threshold.
	return !b.now().Before(b.openUntil)
}

func (b *BreakerSink) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.threshold {
		b.openUntil = b.now().Add(b.cooldown)
	}
}

func (b *BreakerSink) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openUntil = time.Time{}
}
