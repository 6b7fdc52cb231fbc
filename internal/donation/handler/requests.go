package handler

import (
	"strings"
	"time"

	"lahu/internal/donation"
	id "lahu/pkg/domain"
	dErrors "lahu/pkg/domain-errors"
)

// dateLayout is the calendar-date form clients send; RFC 3339 timestamps
// are accepted too.
const dateLayout = "2006-01-02"

type RecordDonationRequest struct {
	DonorID   string `json:"donorId"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	Recipient string `json:"recipient"`
	Notes     string `json:"notes"`

	parsedDonorID *id.UserID
	parsedDate    time.Time
	parsedStatus  donation.Status
}

func (r *RecordDonationRequest) Validate() error {
	r.Location = strings.TrimSpace(r.Location)
	if r.Location == "" {
		return dErrors.New(dErrors.CodeValidation, "location is required")
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return err
	}
	r.parsedDate = date

	if strings.TrimSpace(r.DonorID) != "" {
		donorID, err := id.ParseUserID(strings.TrimSpace(r.DonorID))
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "donorId must be a valid id")
		}
		r.parsedDonorID = &donorID
	}

	r.parsedStatus = donation.StatusScheduled
	if strings.TrimSpace(r.Status) != "" {
		st, err := donation.ParseStatus(r.Status)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, err.Error())
		}
		if st == donation.StatusCancelled {
			return dErrors.New(dErrors.CodeValidation, "new donations must be scheduled or completed")
		}
		r.parsedStatus = st
	}
	return nil
}

func (r *RecordDonationRequest) toCommand() donation.RecordCommand {
	return donation.RecordCommand{
		DonorID:   r.parsedDonorID,
		Date:      r.parsedDate,
		Location:  r.Location,
		Status:    r.parsedStatus,
		Recipient: r.Recipient,
		Notes:     r.Notes,
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "date is required")
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, dErrors.New(dErrors.CodeValidation, "date must be YYYY-MM-DD or RFC 3339")
}

type UpdateStatusRequest struct {
	Status string `json:"status"`

	parsedStatus donation.Status
}

func (r *UpdateStatusRequest) Validate() error {
	if strings.TrimSpace(r.Status) == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	st, err := donation.ParseStatus(r.Status)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	r.parsedStatus = st
	return nil
}
