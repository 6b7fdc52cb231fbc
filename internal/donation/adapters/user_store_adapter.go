package adapters

import (
	"context"
	"time"

	authModels "lahu/internal/auth/models"
	"lahu/internal/donation"
	id "lahu/pkg/domain"
)

// AuthUserStore is the subset of the auth user store donations rely on.
type AuthUserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*authModels.User, error)
	RecordDonation(ctx context.Context, userID id.UserID, at, now time.Time) error
}

// UserStoreAdapter adapts an auth user store to donation.DonorAccounts.
type UserStoreAdapter struct {
	store AuthUserStore
}

func NewUserStoreAdapter(store AuthUserStore) *UserStoreAdapter {
	return &UserStoreAdapter{store: store}
}

func (a *UserStoreAdapter) FindByID(ctx context.Context, userID id.UserID) (*donation.DonorAccount, error) {
	u, err := a.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &donation.DonorAccount{
		ID:        u.ID,
		Name:      u.Name,
		BloodType: u.BloodType,
		IsActive:  u.IsActive,
	}, nil
}

func (a *UserStoreAdapter) RecordDonation(ctx context.Context, userID id.UserID, at, now time.Time) error {
	return a.store.RecordDonation(ctx, userID, at, now)
}
