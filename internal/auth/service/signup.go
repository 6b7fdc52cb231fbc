package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"lahu/internal/audit"
	"lahu/internal/auth/models"
	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	"lahu/pkg/requestcontext"
)

// SignupCommand holds validated registration input.
type SignupCommand struct {
	Email     string
	Password  string
	Name      string
	Phone     string
	BloodType bloodtype.BloodType
	Location  string
	Role      models.Role
}

// Signup registers a new account. Emails are compared case-insensitively.
func (s *Service) Signup(ctx context.Context, cmd SignupCommand) (*models.User, error) {
	email := normalizeEmail(cmd.Email)
	role := cmd.Role
	if role == "" {
		role = models.RoleDonor
	}

	hash, err := s.hashPassword(cmd.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	now := requestcontext.Now(ctx)
	user, err := models.NewUser(id.UserID(uuid.New()), email, strings.TrimSpace(cmd.Name),
		strings.TrimSpace(cmd.Phone), cmd.BloodType, strings.TrimSpace(cmd.Location), role, hash, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.metrics.IncrementUsersCreated()
	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventUserCreated),
		UserID:  user.ID,
		Subject: user.Email,
		Attributes: map[string]string{
			"role":       string(user.Role),
			"blood_type": user.BloodType.String(),
		},
	})
	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID.String(),
		"role", user.Role,
	)
	return user, nil
}

// EnsureAdmin creates an admin account unless the email is already taken.
// Used to bootstrap a fresh deployment.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup admin")
	}
	return s.Signup(ctx, SignupCommand{
		Email:     email,
		Password:  password,
		Name:      name,
		BloodType: bloodtype.ONegative,
		Role:      models.RoleAdmin,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
