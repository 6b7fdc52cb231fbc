package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,TokenIssuer,TokenRevoker,AuditPublisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lahu/internal/audit"
	"lahu/internal/auth/models"
	"lahu/internal/platform/metrics"
	id "lahu/pkg/domain"
	"lahu/pkg/platform/secrets"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID, email, role string, expiresIn time.Duration) (string, error)
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service owns account registration, password login and token revocation.
type Service struct {
	users          UserStore
	tokens         TokenIssuer
	revoker        TokenRevoker
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tokenTTL       time.Duration
	hashPassword   func(string) (string, error)
	verifyPassword func(password, hash string) error
	// dummyHash is compared against on unknown emails so both login
	// failures cost one bcrypt comparison.
	dummyHash      func() (string, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithBcryptCost lowers hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.hashPassword = func(pw string) (string, error) {
			return secrets.HashWithCost(pw, cost)
		}
	}
}

func New(users UserStore, tokens TokenIssuer, revoker TokenRevoker, opts ...Option) *Service {
	s := &Service{
		users:          users,
		tokens:         tokens,
		revoker:        revoker,
		logger:         slog.Default(),
		tokenTTL:       30 * time.Minute,
		hashPassword:   secrets.Hash,
		verifyPassword: secrets.Verify,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dummyHash = sync.OnceValues(func() (string, error) {
		return s.hashPassword(unknownAccountPassword)
	})
	return s
}

// TokenTTL is the lifetime of issued access tokens.
func (s *Service) TokenTTL() time.Duration {
	return s.tokenTTL
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
