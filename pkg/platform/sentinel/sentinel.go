package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: record does not exist
//   - ErrConflict: unique constraint already taken (e.g. email)
//   - ErrInvalidState: record is in the wrong state for the write
//   - ErrUnavailable: backing service temporarily unreachable
//
// Validation failures never use these; see pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
