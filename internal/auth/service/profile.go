package service

import (
	"context"
	"errors"

	"lahu/internal/audit"
	"lahu/internal/auth/models"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	"lahu/pkg/requestcontext"
)

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// UpdateProfile applies the caller's own profile changes.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return user, nil
	}

	user.ApplyProfileUpdate(update, requestcontext.Now(ctx))
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update user")
	}

	s.emitAudit(ctx, audit.Event{
		Action: string(audit.EventProfileUpdated),
		UserID: user.ID,
	})
	return user, nil
}

// ListUsers returns every account. Callers enforce admin access.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}
