package handler

import (
	"time"

	"lahu/internal/donor"
)

type DonorResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	BloodType    string     `json:"bloodType"`
	Age          int        `json:"age"`
	Contact      string     `json:"contact"`
	Email        string     `json:"email,omitempty"`
	Location     string     `json:"location,omitempty"`
	LastDonation *time.Time `json:"lastDonation,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toDonorResponse(d *donor.Donor) DonorResponse {
	return DonorResponse{
		ID:           d.ID.String(),
		Name:         d.Name,
		BloodType:    d.BloodType.String(),
		Age:          d.Age,
		Contact:      d.Contact,
		Email:        d.Email,
		Location:     d.Location,
		LastDonation: d.LastDonation,
		CreatedAt:    d.CreatedAt,
	}
}

func toDonorResponses(donors []*donor.Donor) []DonorResponse {
	out := make([]DonorResponse, 0, len(donors))
	for _, d := range donors {
		out = append(out, toDonorResponse(d))
	}
	return out
}
