package donation

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks DonorAccounts,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lahu/internal/audit"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	txcontext "lahu/pkg/platform/tx"
	"lahu/pkg/requestcontext"
)

// DonorAccounts resolves donors to user accounts and keeps their donation
// totals current.
type DonorAccounts interface {
	FindByID(ctx context.Context, userID id.UserID) (*DonorAccount, error)
	RecordDonation(ctx context.Context, userID id.UserID, at, now time.Time) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Actor is the authenticated caller. Donors act on their own donations;
// admins act on anyone's.
type Actor struct {
	UserID  id.UserID
	IsAdmin bool
}

func (a Actor) canAccess(donorID id.UserID) bool {
	return a.IsAdmin || a.UserID == donorID
}

// Service records donations and drives their status machine.
type Service struct {
	store          Store
	accounts       DonorAccounts
	tx             txcontext.Runner
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

// WithTxRunner makes donation writes and donor total updates atomic.
func WithTxRunner(runner txcontext.Runner) Option {
	return func(s *Service) {
		if runner != nil {
			s.tx = runner
		}
	}
}

func NewService(store Store, accounts DonorAccounts, opts ...Option) *Service {
	s := &Service{
		store:    store,
		accounts: accounts,
		tx:       txcontext.NoopRunner{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordCommand holds validated donation input. DonorID is only honoured
// for admins; everyone else records against their own account.
type RecordCommand struct {
	DonorID   *id.UserID
	Date      time.Time
	Location  string
	Status    Status
	Recipient string
	Notes     string
}

func (s *Service) Record(ctx context.Context, actor Actor, cmd RecordCommand) (*Donation, error) {
	donorID := actor.UserID
	if cmd.DonorID != nil && *cmd.DonorID != actor.UserID {
		if !actor.IsAdmin {
			return nil, dErrors.New(dErrors.CodeForbidden, "only admins can record donations for other donors")
		}
		donorID = *cmd.DonorID
	}

	account, err := s.accounts.FindByID(ctx, donorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donor")
	}
	if !account.IsActive {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donor account is inactive")
	}

	now := requestcontext.Now(ctx)
	d, err := NewDonation(id.DonationID(uuid.New()), account.ID, cmd.Date, cmd.Location,
		cmd.Status, cmd.Recipient, cmd.Notes, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, d); err != nil {
			return err
		}
		if d.Status == StatusCompleted {
			return s.accounts.RecordDonation(ctx, d.DonorID, donatedAt(d.Date, now), now)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record donation")
	}

	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventDonationRecorded),
		UserID:  actor.UserID,
		Subject: d.ID.String(),
		Attributes: map[string]string{
			"donor_id": d.DonorID.String(),
			"status":   string(d.Status),
		},
	})
	s.logger.InfoContext(ctx, "donation recorded",
		"donation_id", d.ID.String(),
		"donor_id", d.DonorID.String(),
		"status", d.Status,
	)
	return d, nil
}

func (s *Service) Get(ctx context.Context, actor Actor, donationID id.DonationID) (*Donation, error) {
	d, err := s.store.FindByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "donation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load donation")
	}
	if !actor.canAccess(d.DonorID) {
		// Not found rather than forbidden so other donors' IDs stay hidden.
		return nil, dErrors.New(dErrors.CodeNotFound, "donation not found")
	}
	return d, nil
}

// List returns donations visible to actor. Non-admins are always scoped to
// their own donations regardless of the requested filter.
func (s *Service) List(ctx context.Context, actor Actor, filter Filter) ([]*Donation, error) {
	if !actor.IsAdmin {
		own := actor.UserID
		filter.DonorID = &own
	}
	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	return out, nil
}

// ListForDonor returns one donor's history.
func (s *Service) ListForDonor(ctx context.Context, actor Actor, donorID id.UserID) ([]*Donation, error) {
	if !actor.canAccess(donorID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "cannot view another donor's donations")
	}
	return s.List(ctx, Actor{UserID: actor.UserID, IsAdmin: true}, Filter{DonorID: &donorID})
}

// UpdateStatus completes or cancels a scheduled donation. Completion bumps
// the donor's total and last donation date in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, donationID id.DonationID, next Status) (*Donation, error) {
	d, err := s.Get(ctx, actor, donationID)
	if err != nil {
		return nil, err
	}
	from := d.Status
	if err := d.TransitionTo(next); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateStatus(ctx, d.ID, from, next); err != nil {
			return err
		}
		if next == StatusCompleted {
			return s.accounts.RecordDonation(ctx, d.DonorID, donatedAt(d.Date, now), now)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "donation status changed concurrently")
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "donation not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update donation")
	}

	s.emitAudit(ctx, audit.Event{
		Action:  string(audit.EventDonationStatusChanged),
		UserID:  actor.UserID,
		Subject: d.ID.String(),
		Attributes: map[string]string{
			"donor_id": d.DonorID.String(),
			"from":     string(from),
			"to":       string(next),
		},
	})
	return d, nil
}

// donatedAt caps a donation date at now so an early completion never
// pushes a donor's last donation into the future.
func donatedAt(date, now time.Time) time.Time {
	if date.After(now) {
		return now
	}
	return date
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
