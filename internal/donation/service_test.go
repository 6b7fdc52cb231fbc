package donation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lahu/internal/audit"
	"lahu/internal/bloodtype"
	"lahu/internal/donation"
	"lahu/internal/donation/mocks"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
	"lahu/pkg/platform/sentinel"
	"lahu/pkg/requestcontext"
)

var now = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	accounts *mocks.MockDonorAccounts
	auditor  *audit.InMemoryStore
	store    *donation.InMemoryStore
	service  *donation.Service
	ctx      context.Context
	donor    donation.Actor
	admin    donation.Actor
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accounts = mocks.NewMockDonorAccounts(s.ctrl)
	s.auditor = audit.NewInMemoryStore()
	s.store = donation.NewInMemoryStore()
	s.service = donation.NewService(s.store, s.accounts,
		donation.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		donation.WithAuditPublisher(audit.NewPublisher(audit.WithSink(s.auditor))),
	)
	s.ctx = requestcontext.WithTime(context.Background(), now)
	s.donor = donation.Actor{UserID: id.UserID(uuid.New())}
	s.admin = donation.Actor{UserID: id.UserID(uuid.New()), IsAdmin: true}
}

func (s *ServiceSuite) expectAccount(userID id.UserID, active bool) {
	s.accounts.EXPECT().FindByID(gomock.Any(), userID).Return(&donation.DonorAccount{
		ID: userID, Name: "Donor", BloodType: bloodtype.OPositive, IsActive: active,
	}, nil)
}

func (s *ServiceSuite) schedule(actor donation.Actor) *donation.Donation {
	s.expectAccount(actor.UserID, true)
	d, err := s.service.Record(s.ctx, actor, donation.RecordCommand{
		Date:     now.AddDate(0, 0, 3),
		Location: "Mulago",
	})
	s.Require().NoError(err)
	return d
}

func (s *ServiceSuite) TestRecord() {
	s.Run("records against the caller by default", func() {
		d := s.schedule(s.donor)
		s.Equal(s.donor.UserID, d.DonorID)
		s.Equal(donation.StatusScheduled, d.Status)

		events, err := s.auditor.ListByUser(s.ctx, s.donor.UserID)
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		s.Equal(string(audit.EventDonationRecorded), events[len(events)-1].Action)
	})

	s.Run("non-admin cannot record for someone else", func() {
		other := id.UserID(uuid.New())
		_, err := s.service.Record(s.ctx, s.donor, donation.RecordCommand{
			DonorID: &other, Date: now, Location: "Mulago",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin records for a donor", func() {
		target := id.UserID(uuid.New())
		s.expectAccount(target, true)
		d, err := s.service.Record(s.ctx, s.admin, donation.RecordCommand{
			DonorID: &target, Date: now.AddDate(0, 0, 1), Location: "Gulu",
		})
		s.Require().NoError(err)
		s.Equal(target, d.DonorID)
	})

	s.Run("unknown donor is 404", func() {
		target := id.UserID(uuid.New())
		s.accounts.EXPECT().FindByID(gomock.Any(), target).Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Record(s.ctx, s.admin, donation.RecordCommand{
			DonorID: &target, Date: now, Location: "Gulu",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("inactive donor is rejected", func() {
		s.expectAccount(s.donor.UserID, false)
		_, err := s.service.Record(s.ctx, s.donor, donation.RecordCommand{Date: now, Location: "Gulu"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("completed donation updates donor totals", func() {
		past := now.AddDate(0, -1, 0)
		s.expectAccount(s.donor.UserID, true)
		s.accounts.EXPECT().RecordDonation(gomock.Any(), s.donor.UserID, past, now).Return(nil)
		d, err := s.service.Record(s.ctx, s.donor, donation.RecordCommand{
			Date: past, Location: "Gulu", Status: donation.StatusCompleted,
		})
		s.Require().NoError(err)
		s.Equal(donation.StatusCompleted, d.Status)
	})
}

func (s *ServiceSuite) TestUpdateStatus() {
	s.Run("completing records the donation on the account", func() {
		d := s.schedule(s.donor)
		// Scheduled three days out; the recorded date is capped at now.
		s.accounts.EXPECT().RecordDonation(gomock.Any(), s.donor.UserID, now, now).Return(nil)

		updated, err := s.service.UpdateStatus(s.ctx, s.donor, d.ID, donation.StatusCompleted)
		s.Require().NoError(err)
		s.Equal(donation.StatusCompleted, updated.Status)

		_, err = s.service.UpdateStatus(s.ctx, s.donor, d.ID, donation.StatusCancelled)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("cancelling does not touch the account", func() {
		d := s.schedule(s.donor)
		updated, err := s.service.UpdateStatus(s.ctx, s.admin, d.ID, donation.StatusCancelled)
		s.Require().NoError(err)
		s.Equal(donation.StatusCancelled, updated.Status)
	})

	s.Run("other donors cannot see the donation", func() {
		d := s.schedule(s.donor)
		stranger := donation.Actor{UserID: id.UserID(uuid.New())}
		_, err := s.service.UpdateStatus(s.ctx, stranger, d.ID, donation.StatusCancelled)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("account failure is internal", func() {
		d := s.schedule(s.donor)
		s.accounts.EXPECT().RecordDonation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db gone"))
		_, err := s.service.UpdateStatus(s.ctx, s.donor, d.ID, donation.StatusCompleted)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestListing() {
	mine := s.schedule(s.donor)
	other := donation.Actor{UserID: id.UserID(uuid.New())}
	s.schedule(other)

	s.Run("donors only see their own", func() {
		ds, err := s.service.List(s.ctx, s.donor, donation.Filter{DonorID: &other.UserID})
		s.Require().NoError(err)
		s.Require().Len(ds, 1)
		s.Equal(mine.ID, ds[0].ID)
	})

	s.Run("admins see everything", func() {
		ds, err := s.service.List(s.ctx, s.admin, donation.Filter{})
		s.Require().NoError(err)
		s.Len(ds, 2)
	})

	s.Run("history of another donor is forbidden", func() {
		_, err := s.service.ListForDonor(s.ctx, s.donor, other.UserID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		ds, err := s.service.ListForDonor(s.ctx, s.admin, other.UserID)
		s.Require().NoError(err)
		s.Len(ds, 1)
	})
}
