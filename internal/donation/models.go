package donation

import (
	"fmt"
	"strings"
	"time"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q: must be scheduled, completed or cancelled", s)
}

// Donation is one donor appointment, recorded against a user account.
type Donation struct {
	ID        id.DonationID
	DonorID   id.UserID
	Date      time.Time
	Location  string
	Status    Status
	Recipient string
	Notes     string
	CreatedAt time.Time
}

// NewDonation records a scheduled or already completed donation. A completed
// donation cannot be dated in the future.
func NewDonation(donationID id.DonationID, donorID id.UserID, date time.Time, location string, status Status, recipient, notes string, now time.Time) (*Donation, error) {
	if donationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donation ID cannot be nil")
	}
	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "donor ID cannot be nil")
	}
	if date.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "date is required")
	}
	if strings.TrimSpace(location) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "location cannot be empty")
	}
	if status == "" {
		status = StatusScheduled
	}
	switch status {
	case StatusScheduled:
	case StatusCompleted:
		if date.After(now) {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "a completed donation cannot be in the future")
		}
	default:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "new donations must be scheduled or completed")
	}
	return &Donation{
		ID:        donationID,
		DonorID:   donorID,
		Date:      date,
		Location:  strings.TrimSpace(location),
		Status:    status,
		Recipient: strings.TrimSpace(recipient),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now,
	}, nil
}

// TransitionTo moves a scheduled donation to completed or cancelled.
func (d *Donation) TransitionTo(next Status) error {
	if d.Status != StatusScheduled || (next != StatusCompleted && next != StatusCancelled) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("cannot change donation status from %s to %s", d.Status, next))
	}
	d.Status = next
	return nil
}

// Filter narrows a donation listing. Nil fields match everything.
type Filter struct {
	DonorID *id.UserID
	Status  *Status
}

func (f Filter) Matches(d *Donation) bool {
	if f.DonorID != nil && d.DonorID != *f.DonorID {
		return false
	}
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	return true
}

// DonorAccount is the view of a user account the donation flow needs.
type DonorAccount struct {
	ID        id.UserID
	Name      string
	BloodType bloodtype.BloodType
	IsActive  bool
}
