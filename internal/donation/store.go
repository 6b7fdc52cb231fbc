package donation

import (
	"context"

	id "lahu/pkg/domain"
)

type Store interface {
	Create(ctx context.Context, donation *Donation) error
	FindByID(ctx context.Context, donationID id.DonationID) (*Donation, error)
	List(ctx context.Context, filter Filter) ([]*Donation, error)
	// UpdateStatus is a compare-and-set on the status column; it returns
	// sentinel.ErrInvalidState when the stored status is no longer from.
	UpdateStatus(ctx context.Context, donationID id.DonationID, from, to Status) error
}
