package user

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"lahu/internal/auth/models"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in memory. Lookups return copies so callers
// cannot mutate stored state without going through the store.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.User
	byEmail map[string]id.UserID
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
	}
}

// Create stores a new user. Emails are unique.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[user.Email]; taken {
		return fmt.Errorf("email %s: %w", user.Email, sentinel.ErrConflict)
	}
	if _, exists := s.users[user.ID]; exists {
		return fmt.Errorf("user %s: %w", user.ID, sentinel.ErrConflict)
	}
	s.users[user.ID] = clone(user)
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		return clone(u), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byEmail[email]; ok {
		return clone(s.users[userID]), nil
	}
	return nil, sentinel.ErrNotFound
}

// Update replaces the mutable profile of an existing user. Email changes are
// not supported.
func (s *InMemoryUserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[user.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	updated := clone(user)
	updated.Email = existing.Email
	s.users[user.ID] = updated
	return nil
}

// RecordDonation increments the donation counter atomically.
func (s *InMemoryUserStore) RecordDonation(_ context.Context, userID id.UserID, at, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	u.RecordDonation(at, now)
	return nil
}

// List returns all users ordered by creation time.
func (s *InMemoryUserStore) List(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func clone(u *models.User) *models.User {
	c := *u
	if u.LastDonation != nil {
		t := *u.LastDonation
		c.LastDonation = &t
	}
	return &c
}
