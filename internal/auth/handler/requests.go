package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"lahu/internal/auth/models"
	"lahu/internal/bloodtype"
	dErrors "lahu/pkg/domain-errors"
)

const minPasswordLength = 8

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	BloodType string `json:"bloodType"`
	Location  string `json:"location"`
	Role      string `json:"role"`

	parsedBloodType bloodtype.BloodType
}

func (r *SignupRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid email address")
	}
	if len(r.Password) < minPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	bt, err := bloodtype.Parse(r.BloodType)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedBloodType = bt

	switch models.Role(strings.ToLower(strings.TrimSpace(r.Role))) {
	case "", models.RoleDonor:
	case models.RoleAdmin:
		return dErrors.New(dErrors.CodeForbidden, "admin accounts cannot be self-registered")
	default:
		return dErrors.New(dErrors.CodeValidation, "role must be donor")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "email and password are required")
	}
	return nil
}

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
		}
		r.Name = &trimmed
	}
	return nil
}

func (r *UpdateProfileRequest) toModel() models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:        r.Name,
		Phone:       r.Phone,
		Location:    r.Location,
		IsAvailable: r.IsAvailable,
	}
}
