package donor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lahu/internal/audit"
	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	"lahu/pkg/requestcontext"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages the donor registry.
type Service struct {
	store          Store
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

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterCommand holds validated donor registration input.
type RegisterCommand struct {
	Name         string
	BloodType    bloodtype.BloodType
	Age          int
	Contact      string
	Email        string
	Location     string
	LastDonation *time.Time
}

// Register adds a donor to the registry on behalf of the calling user.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Donor, error) {
	now := requestcontext.Now(ctx)
	donor, err := NewDonor(id.DonorID(uuid.New()), cmd.Name, cmd.BloodType, cmd.Age,
		cmd.Contact, cmd.Email, cmd.Location, cmd.LastDonation, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.Create(ctx, donor); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register donor")
	}

	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventDonorRegistered),
		UserID:  requestcontext.UserID(ctx),
		Subject: donor.ID.String(),
		Attributes: map[string]string{
			"blood_type": donor.BloodType.String(),
		},
	})
	s.logger.InfoContext(ctx, "donor registered",
		"donor_id", donor.ID.String(),
		"blood_type", donor.BloodType.String(),
	)
	return donor, nil
}

func (s *Service) Get(ctx context.Context, donorID id.DonorID) (*Donor, error) {
	donor, err := s.store.FindByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donor")
	}
	return donor, nil
}

// SearchQuery narrows a registry search. CompatibleWith restricts results to
// donors who can give blood to that recipient type; combined with BloodType
// the two sets are intersected.
type SearchQuery struct {
	BloodType      *bloodtype.BloodType
	CompatibleWith *bloodtype.BloodType
	Location       string
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]*Donor, error) {
	filter := Filter{Location: q.Location}
	switch {
	case q.BloodType != nil && q.CompatibleWith != nil:
		filter.BloodTypes = []bloodtype.BloodType{}
		if bloodtype.Check(*q.BloodType, *q.CompatibleWith).Compatible {
			filter.BloodTypes = []bloodtype.BloodType{*q.BloodType}
		}
	case q.BloodType != nil:
		filter.BloodTypes = []bloodtype.BloodType{*q.BloodType}
	case q.CompatibleWith != nil:
		filter.BloodTypes = bloodtype.DonorsFor(*q.CompatibleWith)
	}
	if filter.BloodTypes != nil && len(filter.BloodTypes) == 0 {
		return []*Donor{}, nil
	}

	donors, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search donors")
	}
	return donors, nil
}

// FindCompatible lists registry donors whose blood can be given to recipient.
func (s *Service) FindCompatible(ctx context.Context, recipient bloodtype.BloodType) ([]*Donor, error) {
	return s.Search(ctx, SearchQuery{CompatibleWith: &recipient})
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
