package handler

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"lahu/internal/bloodtype"
	"lahu/internal/donor"
	dErrors "lahu/pkg/domain-errors"
)

type RegisterDonorRequest struct {
	Name         string     `json:"name"`
	BloodType    string     `json:"bloodType"`
	Age          int        `json:"age"`
	Contact      string     `json:"contact"`
	Email        string     `json:"email"`
	Location     string     `json:"location"`
	LastDonation *time.Time `json:"lastDonation"`

	parsedBloodType bloodtype.BloodType
}

func (r *RegisterDonorRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Contact == "" {
		return dErrors.New(dErrors.CodeValidation, "contact is required")
	}
	if r.Age < donor.MinAge || r.Age > donor.MaxAge {
		return dErrors.New(dErrors.CodeValidation, "age must be between 18 and 65")
	}
	if r.Email != "" && !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid email address")
	}
	bt, err := bloodtype.Parse(r.BloodType)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedBloodType = bt
	return nil
}

func (r *RegisterDonorRequest) toCommand() donor.RegisterCommand {
	return donor.RegisterCommand{
		Name:         r.Name,
		BloodType:    r.parsedBloodType,
		Age:          r.Age,
		Contact:      r.Contact,
		Email:        r.Email,
		Location:     r.Location,
		LastDonation: r.LastDonation,
	}
}

// parseSearchQuery reads the bloodType, compatibleWith and location query
// parameters. Unknown blood types are a client error.
func parseSearchQuery(bloodTypeRaw, compatibleWithRaw, location string) (donor.SearchQuery, error) {
	q := donor.SearchQuery{Location: strings.TrimSpace(location)}
	if bloodTypeRaw != "" {
		bt, err := bloodtype.Parse(bloodTypeRaw)
		if err != nil {
			return q, dErrors.New(dErrors.CodeBadRequest, err.Error())
		}
		q.BloodType = &bt
	}
	if compatibleWithRaw != "" {
		bt, err := bloodtype.Parse(compatibleWithRaw)
		if err != nil {
			return q, dErrors.New(dErrors.CodeBadRequest, err.Error())
		}
		q.CompatibleWith = &bt
	}
	return q, nil
}
