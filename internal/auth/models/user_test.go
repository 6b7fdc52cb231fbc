package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

func TestNewUser(t *testing.T) {
	now := time.Now()
	userID := id.UserID(uuid.New())

	t.Run("valid user is active and available", func(t *testing.T) {
		u, err := NewUser(userID, "a@example.com", "Ann", "", bloodtype.ONegative, "", RoleDonor, "hash", now)
		require.NoError(t, err)
		assert.True(t, u.IsActive)
		assert.True(t, u.IsAvailable)
		assert.False(t, u.IsAdmin())
		assert.Zero(t, u.TotalDonations)
		assert.Nil(t, u.LastDonation)
	})

	cases := []struct {
		name string
		fn   func() (*User, error)
	}{
		{"nil id", func() (*User, error) {
			return NewUser(id.UserID(uuid.Nil), "a@example.com", "Ann", "", bloodtype.ONegative, "", RoleDonor, "hash", now)
		}},
		{"empty email", func() (*User, error) {
			return NewUser(userID, " ", "Ann", "", bloodtype.ONegative, "", RoleDonor, "hash", now)
		}},
		{"empty name", func() (*User, error) {
			return NewUser(userID, "a@example.com", "", "", bloodtype.ONegative, "", RoleDonor, "hash", now)
		}},
		{"invalid blood type", func() (*User, error) {
			return NewUser(userID, "a@example.com", "Ann", "", bloodtype.BloodType("C+"), "", RoleDonor, "hash", now)
		}},
		{"invalid role", func() (*User, error) {
			return NewUser(userID, "a@example.com", "Ann", "", bloodtype.ONegative, "", Role("root"), "hash", now)
		}},
		{"missing hash", func() (*User, error) {
			return NewUser(userID, "a@example.com", "Ann", "", bloodtype.ONegative, "", RoleDonor, "", now)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestUser_RecordDonation(t *testing.T) {
	u := &User{}
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	u.RecordDonation(mar, now)
	u.RecordDonation(jan, now)

	assert.Equal(t, 2, u.TotalDonations)
	require.NotNil(t, u.LastDonation)
	assert.Equal(t, mar, *u.LastDonation)
	assert.Equal(t, now, u.UpdatedAt)
}

func TestUser_ApplyProfileUpdate(t *testing.T) {
	u := &User{Name: "Ann", Phone: "1", Location: "Lagos", IsAvailable: true}
	name := "Annie"
	available := false

	u.ApplyProfileUpdate(ProfileUpdate{Name: &name, IsAvailable: &available}, time.Now())

	assert.Equal(t, "Annie", u.Name)
	assert.Equal(t, "1", u.Phone)
	assert.Equal(t, "Lagos", u.Location)
	assert.False(t, u.IsAvailable)
	assert.True(t, ProfileUpdate{}.IsEmpty())
}
