package donor

import (
	"context"
	"sort"
	"sync"

	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	donors map[id.DonorID]*Donor
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{donors: make(map[id.DonorID]*Donor)}
}

func (s *InMemoryStore) Create(_ context.Context, donor *Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donors[donor.ID]; exists {
		return sentinel.ErrConflict
	}
	c := *donor
	s.donors[donor.ID] = &c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, donorID id.DonorID) (*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donors[donorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *d
	return &c, nil
}

// List returns matching donors, newest registration first.
func (s *InMemoryStore) List(_ context.Context, filter Filter) ([]*Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Donor, 0)
	for _, d := range s.donors {
		if filter.Matches(d) {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
