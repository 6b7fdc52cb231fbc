package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"lahu/internal/bloodrequest"
	"lahu/internal/bloodtype"
	dErrors "lahu/pkg/domain-errors"
)

type CreateRequest struct {
	PatientName string `json:"patientName"`
	BloodType   string `json:"bloodType"`
	UnitsNeeded int    `json:"unitsNeeded"`
	Hospital    string `json:"hospital"`
	Contact     string `json:"contact"`
	Urgency     string `json:"urgency"`
	Location    string `json:"location"`
	Email       string `json:"email"`

	parsedBloodType bloodtype.BloodType
	parsedUrgency   bloodrequest.Urgency
}

func (r *CreateRequest) Validate() error {
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.Hospital = strings.TrimSpace(r.Hospital)
	r.Contact = strings.TrimSpace(r.Contact)
	r.Email = strings.TrimSpace(r.Email)
	if r.PatientName == "" {
		return dErrors.New(dErrors.CodeValidation, "patientName is required")
	}
	if r.Hospital == "" {
		return dErrors.New(dErrors.CodeValidation, "hospital is required")
	}
	if r.Contact == "" {
		return dErrors.New(dErrors.CodeValidation, "contact is required")
	}
	if r.UnitsNeeded < bloodrequest.MinUnits || r.UnitsNeeded > bloodrequest.MaxUnits {
		return dErrors.New(dErrors.CodeValidation, "unitsNeeded must be between 1 and 50")
	}
	if r.Email != "" && !govalidator.IsEmail(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid email address")
	}
	bt, err := bloodtype.Parse(r.BloodType)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedBloodType = bt
	urgency, err := bloodrequest.ParseUrgency(r.Urgency)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedUrgency = urgency
	return nil
}

func (r *CreateRequest) toCommand() bloodrequest.CreateCommand {
	return bloodrequest.CreateCommand{
		PatientName: r.PatientName,
		BloodType:   r.parsedBloodType,
		UnitsNeeded: r.UnitsNeeded,
		Hospital:    r.Hospital,
		Contact:     r.Contact,
		Urgency:     r.parsedUrgency,
		Location:    r.Location,
		Email:       r.Email,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`

	parsedStatus bloodrequest.Status
}

func (r *UpdateStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	st, err := bloodrequest.ParseStatus(r.Status)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedStatus = st
	return nil
}

func parseFilter(statusRaw, bloodTypeRaw string) (bloodrequest.Filter, error) {
	var f bloodrequest.Filter
	if statusRaw != "" {
		st, err := bloodrequest.ParseStatus(statusRaw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeBadRequest, err.Error())
		}
		f.Status = &st
	}
	if bloodTypeRaw != "" {
		bt, err := bloodtype.Parse(bloodTypeRaw)
		if err != nil {
			return f, dErrors.New(dErrors.CodeBadRequest, err.Error())
		}
		f.BloodType = &bt
	}
	return f, nil
}
