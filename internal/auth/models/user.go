package models

import (
	"strings"
	"time"

	"lahu/internal/bloodtype"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

type Role string

const (
	RoleDonor Role = "donor"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleDonor || r == RoleAdmin
}

// User is an account holder. Donors record donations against their own
// account; admins can act on behalf of any donor.
type User struct {
	ID             id.UserID
	Email          string
	Name           string
	Phone          string
	BloodType      bloodtype.BloodType
	Location       string
	Role           Role
	IsAvailable    bool
	IsActive       bool
	TotalDonations int
	LastDonation   *time.Time
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser builds an active, available user. Inputs are expected to be
// validated already; violations here are programming errors.
func NewUser(userID id.UserID, email, name, phone string, bt bloodtype.BloodType, location string, role Role, passwordHash string, now time.Time) (*User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user ID cannot be nil")
	}
	if strings.TrimSpace(email) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "name cannot be empty")
	}
	if !bt.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "blood type must be valid")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "role must be donor or admin")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	return &User{
		ID:           userID,
		Email:        email,
		Name:         name,
		Phone:        phone,
		BloodType:    bt,
		Location:     location,
		Role:         role,
		IsAvailable:  true,
		IsActive:     true,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate carries the optional fields a user may change on themselves.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Location    *string
	IsAvailable *bool
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Location == nil && p.IsAvailable == nil
}

func (u *User) ApplyProfileUpdate(p ProfileUpdate, now time.Time) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.IsAvailable != nil {
		u.IsAvailable = *p.IsAvailable
	}
	u.UpdatedAt = now
}

// RecordDonation counts a completed donation. LastDonation only moves
// forward, so completing an older donation late does not rewind it.
func (u *User) RecordDonation(at, now time.Time) {
	u.TotalDonations++
	if u.LastDonation == nil || at.After(*u.LastDonation) {
		t := at
		u.LastDonation = &t
	}
	u.UpdatedAt = now
}
