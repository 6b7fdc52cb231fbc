package donor

import (
	"context"

	id "lahu/pkg/domain"
)

type Store interface {
	Create(ctx context.Context, donor *Donor) error
	FindByID(ctx context.Context, donorID id.DonorID) (*Donor, error)
	List(ctx context.Context, filter Filter) ([]*Donor, error)
}
