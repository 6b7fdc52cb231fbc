package ratelimit

import (
	"context"
	"sync"
	"time"
)

const defaultSweepInterval = time.Minute

// InMemoryStore is a sliding-window counter local to the process. Keys whose
// window has fully elapsed are swept so the map does not grow per client.
type InMemoryStore struct {
	mu            sync.Mutex
	windows       map[string]*window
	now           func() time.Time
	sweepInterval time.Duration
	lastSweep     time.Time
}

type window struct {
	hits []time.Time
	span time.Duration
}

type InMemoryOption func(*InMemoryStore)

func WithClock(now func() time.Time) InMemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

func WithSweepInterval(d time.Duration) InMemoryOption {
	return func(s *InMemoryStore) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

func NewInMemoryStore(opts ...InMemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		windows:       make(map[string]*window),
		now:           time.Now,
		sweepInterval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastSweep = s.now()
	return s
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit Limit) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= s.sweepInterval {
		s.sweep(now)
	}

	w, ok := s.windows[key]
	if !ok {
		w = &window{}
		s.windows[key] = w
	}
	w.span = limit.Window
	w.hits = prune(w.hits, now.Add(-limit.Window))

	if len(w.hits) >= limit.Requests {
		return Result{
			Allowed: false,
			Limit:   limit.Requests,
			ResetAt: w.hits[0].Add(limit.Window),
		}, nil
	}

	w.hits = append(w.hits, now)
	return Result{
		Allowed:   true,
		Limit:     limit.Requests,
		Remaining: limit.Requests - len(w.hits),
		ResetAt:   w.hits[0].Add(limit.Window),
	}, nil
}

// sweep drops every key with no hit inside its last window. Callers hold mu.
func (s *InMemoryStore) sweep(now time.Time) {
	for key, w := range s.windows {
		w.hits = prune(w.hits, now.Add(-w.span))
		if len(w.hits) == 0 {
			delete(s.windows, key)
		}
	}
	s.lastSweep = now
}

// prune drops timestamps at or before cutoff. hits is ordered oldest first.
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(hits); i++ {
		if hits[i].After(cutoff) {
			break
		}
	}
	return hits[i:]
}
