package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"lahu/internal/auth/models"
	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
	ctx   context.Context
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func newTestUser(email string) *models.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.User{
		ID:           id.UserID(uuid.New()),
		Email:        email,
		Name:         "Jane Doe",
		BloodType:    bloodtype.OPositive,
		Role:         models.RoleDonor,
		IsAvailable:  true,
		IsActive:     true,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	user := newTestUser("jane.doe@example.com")
	s.Require().NoError(s.store.Create(s.ctx, user))

	s.Run("returns user by ID when exists", func() {
		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user, found)
	})

	s.Run("returns user by email when exists", func() {
		found, err := s.store.FindByEmail(s.ctx, user.Email)
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("returns ErrNotFound when user ID does not exist", func() {
		_, err := s.store.FindByID(s.ctx, id.UserID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound when email does not exist", func() {
		_, err := s.store.FindByEmail(s.ctx, "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned users are copies", func() {
		found, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		found.Name = "Mutated"

		again, err := s.store.FindByID(s.ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("Jane Doe", again.Name)
	})
}

func (s *InMemoryUserStoreSuite) TestCreateRejectsDuplicateEmail() {
	s.Require().NoError(s.store.Create(s.ctx, newTestUser("dup@example.com")))
	err := s.store.Create(s.ctx, newTestUser("dup@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}

func (s *InMemoryUserStoreSuite) TestUpdate() {
	user := newTestUser("update@example.com")
	s.Require().NoError(s.store.Create(s.ctx, user))

	user.Name = "Renamed"
	user.Email = "changed@example.com"
	s.Require().NoError(s.store.Update(s.ctx, user))

	found, err := s.store.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", found.Name)
	s.Equal("update@example.com", found.Email, "email is immutable")

	s.Require().ErrorIs(s.store.Update(s.ctx, newTestUser("ghost@example.com")), sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestRecordDonationIsAtomic() {
	user := newTestUser("donor@example.com")
	s.Require().NoError(s.store.Create(s.ctx, user))
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.RecordDonation(s.ctx, user.ID, at, at)
		}()
	}
	wg.Wait()

	found, err := s.store.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(50, found.TotalDonations)
	s.Require().NotNil(found.LastDonation)
	s.True(found.LastDonation.Equal(at))

	s.Require().ErrorIs(s.store.RecordDonation(s.ctx, id.UserID(uuid.New()), at, at), sentinel.ErrNotFound)
}

func (s *InMemoryUserStoreSuite) TestListOrdersByCreation() {
	first := newTestUser("first@example.com")
	second := newTestUser("second@example.com")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))

	users, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(first.ID, users[0].ID)
	s.Equal(second.ID, users[1].ID)
}
