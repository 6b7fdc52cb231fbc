package bloodrequest

import (
	"context"
	"time"

	id "lahu/pkg/domain"
)

type Store interface {
	Create(ctx context.Context, req *Request) error
	FindByID(ctx context.Context, requestID id.BloodRequestID) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, error)
	// UpdateStatus moves a request from one status to another atomically.
	// It returns sentinel.ErrInvalidState when the stored status is no longer
	// from, and sentinel.ErrNotFound when the request does not exist.
	UpdateStatus(ctx context.Context, requestID id.BloodRequestID, from, to Status, at time.Time) error
}
