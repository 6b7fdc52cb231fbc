package bloodrequest

import (
	"fmt"
	"strings"
	"time"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

const (
	MinUnits = 1
	MaxUnits = 50
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// ParseUrgency accepts any casing.
func ParseUrgency(s string) (Urgency, error) {
	u := Urgency(strings.ToLower(strings.TrimSpace(s)))
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return u, nil
	}
	return "", fmt.Errorf("invalid urgency %q: must be low, medium, high or critical", s)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusFulfilled, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("invalid status %q: must be pending, fulfilled or cancelled", s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusFulfilled || s == StatusCancelled
}

// Request is a hospital's need for blood on behalf of a patient.
type Request struct {
	ID          id.BloodRequestID
	PatientName string
	BloodType   bloodtype.BloodType
	UnitsNeeded int
	Hospital    string
	Contact     string
	Urgency     Urgency
	Status      Status
	Location    string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRequest builds a pending request. Inputs are expected to be validated.
func NewRequest(requestID id.BloodRequestID, patientName string, bt bloodtype.BloodType, units int, hospital, contact string, urgency Urgency, location, email string, now time.Time) (*Request, error) {
	if requestID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "request ID cannot be nil")
	}
	if strings.TrimSpace(patientName) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "patient name cannot be empty")
	}
	if strings.TrimSpace(hospital) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "hospital cannot be empty")
	}
	if strings.TrimSpace(contact) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact cannot be empty")
	}
	if !bt.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "blood type must be valid")
	}
	if units < MinUnits || units > MaxUnits {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "units needed must be between 1 and 50")
	}
	if _, err := ParseUrgency(string(urgency)); err != nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, err.Error())
	}
	return &Request{
		ID:          requestID,
		PatientName: strings.TrimSpace(patientName),
		BloodType:   bt,
		UnitsNeeded: units,
		Hospital:    strings.TrimSpace(hospital),
		Contact:     strings.TrimSpace(contact),
		Urgency:     urgency,
		Status:      StatusPending,
		Location:    strings.TrimSpace(location),
		Email:       strings.TrimSpace(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Only pending requests move, and only to a terminal status.
func (r *Request) CanTransitionTo(next Status) bool {
	return r.Status == StatusPending && next.IsTerminal()
}

// TransitionTo moves the request to next or returns an invariant violation.
func (r *Request) TransitionTo(next Status, now time.Time) error {
	if !r.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("cannot change request status from %s to %s", r.Status, next))
	}
	r.Status = next
	r.UpdatedAt = now
	return nil
}

// Filter narrows a request listing. Nil fields match everything.
type Filter struct {
	Status    *Status
	BloodType *bloodtype.BloodType
}

func (f Filter) Matches(r *Request) bool {
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.BloodType != nil && r.BloodType != *f.BloodType {
		return false
	}
	return true
}
