package donation

import (
	"context"
	"sort"
	"sync"

	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu        sync.RWMutex
	donations map[id.DonationID]*Donation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{donations: make(map[id.DonationID]*Donation)}
}

func (s *InMemoryStore) Create(_ context.Context, donation *Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donations[donation.ID]; exists {
		return sentinel.ErrConflict
	}
	c := *donation
	s.donations[donation.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, donationID id.DonationID) (*Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donations[donationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *d
	return &c, nil
}

// List returns matching donations, most recent donation date first.
func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Donation, 0)
	for _, d := range s.donations {
		if filter.Matches(d) {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, donationID id.DonationID, from, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.donations[donationID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if d.Status != from {
		return sentinel.ErrInvalidState
	}
	d.Status = to
	return nil
}
