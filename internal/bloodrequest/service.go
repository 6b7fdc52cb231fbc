package bloodrequest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"lahu/internal/audit"
	"lahu/internal/bloodtype"
	"lahu/internal/donor"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	"lahu/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks DonorFinder,AuditPublisher

// DonorFinder looks up registry donors able to give to a recipient type.
type DonorFinder interface {
	FindCompatible(ctx context.Context, recipient bloodtype.BloodType) ([]*donor.Donor, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages blood requests and matches them against the donor registry.
type Service struct {
	store          Store
	donors         DonorFinder
	auditPublisher AuditPublisher
	logger         *slog.Logger
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

func NewService(store Store, donors DonorFinder, opts ...Option) *Service {
	s := &Service{
		store:  store,
		donors: donors,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCommand holds validated request input.
type CreateCommand struct {
	PatientName string
	BloodType   bloodtype.BloodType
	UnitsNeeded int
	Hospital    string
	Contact     string
	Urgency     Urgency
	Location    string
	Email       string
}

// Create opens a new request in pending status.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Request, error) {
	req, err := NewRequest(id.BloodRequestID(uuid.New()), cmd.PatientName, cmd.BloodType,
		cmd.UnitsNeeded, cmd.Hospital, cmd.Contact, cmd.Urgency, cmd.Location, cmd.Email,
		requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.Create(ctx, req); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create blood request")
	}

	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventRequestCreated),
		UserID:  requestcontext.UserID(ctx),
		Subject: req.ID.String(),
		Attributes: map[string]string{
			"blood_type": req.BloodType.String(),
			"urgency":    string(req.Urgency),
		},
	})
	s.logger.InfoContext(ctx, "blood request created",
		"request_id", requestcontext.RequestID(ctx),
		"blood_request_id", req.ID.String(),
		"blood_type", req.BloodType.String(),
		"urgency", req.Urgency,
	)
	return req, nil
}

func (s *Service) Get(ctx context.Context, requestID id.BloodRequestID) (*Request, error) {
	req, err := s.store.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load blood request")
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Request, error) {
	reqs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list blood requests")
	}
	return reqs, nil
}

// UpdateStatus closes a pending request as fulfilled or cancelled.
func (s *Service) UpdateStatus(ctx context.Context, requestID id.BloodRequestID, next Status) (*Request, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	from := req.Status
	if err := req.TransitionTo(next, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, requestID, from, next, req.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "request not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "request status changed concurrently")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update blood request")
	}

	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventRequestStatusChanged),
		UserID:  requestcontext.UserID(ctx),
		Subject: req.ID.String(),
		Attributes: map[string]string{
			"from": string(from),
			"to":   string(next),
		},
	})
	return req, nil
}

// Matches returns registry donors compatible with the request's blood type.
func (s *Service) Matches(ctx context.Context, requestID id.BloodRequestID) ([]*donor.Donor, error) {
	req, err := s.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	donors, err := s.donors.FindCompatible(ctx, req.BloodType)
	if err != nil {
		if _, ok := dErrors.As(err); ok {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find matching donors")
	}
	return donors, nil
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
