package domain

import (
	"github.com/google/uuid"

	dErrors "lahu/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so the compiler rejects passing a
// DonorID where a UserID is expected.
type (
	UserID         uuid.UUID
	DonorID        uuid.UUID
	DonationID     uuid.UUID
	BloodRequestID uuid.UUID
)

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id DonorID) String() string        { return uuid.UUID(id).String() }
func (id DonationID) String() string     { return uuid.UUID(id).String() }
func (id BloodRequestID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id DonorID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id DonationID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id BloodRequestID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Text marshalling keeps IDs as canonical UUID strings in JSON and Kafka
// payloads instead of 16-element arrays.
func (id UserID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id DonorID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id DonationID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id BloodRequestID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DonorID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DonationID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *BloodRequestID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// ParseUserID parses a user ID from external input.
//
// Errors: CodeInvalidInput when the value is empty, malformed, or the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseDonorID parses a donor ID from external input.
func ParseDonorID(s string) (DonorID, error) {
	u, err := parseUUID(s, "donor ID")
	return DonorID(u), err
}

// ParseDonationID parses a donation ID from external input.
func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID(s, "donation ID")
	return DonationID(u), err
}

// ParseBloodRequestID parses a blood request ID from external input.
func ParseBloodRequestID(s string) (BloodRequestID, error) {
	u, err := parseUUID(s, "request ID")
	return BloodRequestID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
