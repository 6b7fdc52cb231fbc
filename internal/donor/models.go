package donor

import (
	"strings"
	"time"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

const (
	MinAge = 18
	MaxAge = 65
)

// Donor is a registered blood donor in the public registry. Registry
// entries are independent of user accounts.
type Donor struct {
	ID           id.DonorID
	Name         string
	BloodType    bloodtype.BloodType
	Age          int
	Contact      string
	Email        string
	Location     string
	LastDonation *time.Time
	CreatedAt    time.Time
}

// NewDonor enforces the registry eligibility rules. The handler validates
// the same fields first; violations here mean a caller skipped that.
func NewDonor(donorID id.DonorID, name string, bt bloodtype.BloodType, age int, contact, email, location string, lastDonation *time.Time, now time.Time) (*Donor, error) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name is required")
	}
	if contact == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact is required")
	}
	if !bt.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "blood type must be valid")
	}
	if age < MinAge || age > MaxAge {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "age must be between 18 and 65")
	}
	if lastDonation != nil && lastDonation.After(now) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "last donation cannot be in the future")
	}
	return &Donor{
		ID:           donorID,
		Name:         name,
		BloodType:    bt,
		Age:          age,
		Contact:      contact,
		Email:        strings.TrimSpace(email),
		Location:     strings.TrimSpace(location),
		LastDonation: lastDonation,
		CreatedAt:    now,
	}, nil
}

// Filter narrows a registry listing. Zero values match everything.
type Filter struct {
	// BloodTypes matches any of the listed types; nil means no restriction
	// and an empty non-nil slice matches nothing.
	BloodTypes []bloodtype.BloodType
	// Location is a case-insensitive substring match.
	Location string
}

func (f Filter) Matches(d *Donor) bool {
	if f.BloodTypes != nil {
		found := false
		for _, bt := range f.BloodTypes {
			if d.BloodType == bt {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(d.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}
