package bloodrequest

import (
	"context"
	"sort"
	"sync"
	"time"

	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[id.BloodRequestID]*Request
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[id.BloodRequestID]*Request)}
}

func (s *InMemoryStore) Create(_ context.Context, req *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.requests[req.ID]; exists {
		return sentinel.ErrConflict
	}
	c := *req
	s.requests[req.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, requestID id.BloodRequestID) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[requestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *r
	return &c, nil
}

// List returns matching requests, newest first.
func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Request, 0)
	for _, r := range s.requests {
		if filter.Matches(r) {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, requestID id.BloodRequestID, from, to Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[requestID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if r.Status != from {
		return sentinel.ErrInvalidState
	}
	r.Status = to
	r.UpdatedAt = at
	return nil
}
