package handler

import (
	"time"

	"lahu/internal/donation"
)

type DonationResponse struct {
	ID        string    `json:"id"`
	DonorID   string    `json:"donorId"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Recipient string    `json:"recipient,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDonationResponse(d *donation.Donation) DonationResponse {
	return DonationResponse{
		ID:        d.ID.String(),
		DonorID:   d.DonorID.String(),
		Date:      d.Date,
		Location:  d.Location,
		Status:    string(d.Status),
		Recipient: d.Recipient,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
	}
}

func toDonationResponses(ds []*donation.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, toDonationResponse(d))
	}
	return out
}
