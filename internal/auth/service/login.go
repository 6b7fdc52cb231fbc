package service

import (
	"context"
	"errors"
	"time"

	"lahu/internal/audit"
	"lahu/internal/auth/models"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	"lahu/pkg/requestcontext"
)

const (
	invalidCredentials     = "incorrect email or password"
	unknownAccountPassword = "lahu-unknown-account"
)

// LoginResult is the issued bearer token and the account it belongs to.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	User        *models.User
}

// Login verifies the password and issues an access token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.burnVerify(ctx, password)
			s.loginFailed(ctx, email, "unknown_email", nil)
			return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lookup user")
	}

	if err := s.verifyPassword(password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.loginFailed(ctx, email, "bad_password", user)
			return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}
	if !user.IsActive {
		s.loginFailed(ctx, email, "inactive", user)
		return nil, dErrors.New(dErrors.CodeUnauthorized, invalidCredentials)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}

	s.metrics.IncrementLoginAttempt(true)
	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventLoginSucceeded),
		UserID:  user.ID,
		Subject: user.Email,
	})
	s.logger.InfoContext(ctx, "login succeeded",
		"user_id", user.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.tokenTTL,
		User:        user,
	}, nil
}

// burnVerify spends the same bcrypt work as a real password check.
func (s *Service) burnVerify(ctx context.Context, password string) {
	hash, err := s.dummyHash()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to prepare dummy password hash", "error", err)
		return
	}
	_ = s.verifyPassword(password, hash)
}

func (s *Service) loginFailed(ctx context.Context, email, reason string, user *models.User) {
	s.metrics.IncrementLoginAttempt(false)
	event := audit.Event{
		Action:     string(audit.EventLoginFailed),
		Subject:    email,
		Attributes: map[string]string{"reason": reason},
	}
	if user != nil {
		event.UserID = user.ID
	}
	s.emitAudit(ctx, event)
	s.logger.WarnContext(ctx, "login failed",
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
}

// Logout revokes the presented token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "token has no identifier")
	}
	ttl := expiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		// already expired; nothing to revoke
		return nil
	}
	if err := s.revoker.RevokeToken(ctx, jti, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.emitAudit(ctx, audit.Event{
		Action: string(audit.EventLogout),
		UserID: requestcontext.UserID(ctx),
	})
	return nil
}
