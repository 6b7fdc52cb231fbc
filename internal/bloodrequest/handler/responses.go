package handler

import (
	"time"

	"lahu/internal/bloodrequest"
	"lahu/internal/donor"
)

type RequestResponse struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patientName"`
	BloodType   string    `json:"bloodType"`
	UnitsNeeded int       `json:"unitsNeeded"`
	Hospital    string    `json:"hospital"`
	Contact     string    `json:"contact"`
	Urgency     string    `json:"urgency"`
	Status      string    `json:"status"`
	Location    string    `json:"location,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRequestResponse(r *bloodrequest.Request) RequestResponse {
	return RequestResponse{
		ID:          r.ID.String(),
		PatientName: r.PatientName,
		BloodType:   r.BloodType.String(),
		UnitsNeeded: r.UnitsNeeded,
		Hospital:    r.Hospital,
		Contact:     r.Contact,
		Urgency:     string(r.Urgency),
		Status:      string(r.Status),
		Location:    r.Location,
		Email:       r.Email,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// MatchResponse is one registry donor able to give to the request.
type MatchResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BloodType string `json:"bloodType"`
	Contact   string `json:"contact"`
	Location  string `json:"location,omitempty"`
}

type MatchesResponse struct {
	RequestID string          `json:"requestId"`
	BloodType string          `json:"bloodType"`
	Donors    []MatchResponse `json:"donors"`
}

func toMatchesResponse(r *bloodrequest.Request, donors []*donor.Donor) MatchesResponse {
	resp := MatchesResponse{
		RequestID: r.ID.String(),
		BloodType: r.BloodType.String(),
		Donors:    make([]MatchResponse, 0, len(donors)),
	}
	for _, d := range donors {
		resp.Donors = append(resp.Donors, MatchResponse{
			ID:        d.ID.String(),
			Name:      d.Name,
			BloodType: d.BloodType.String(),
			Contact:   d.Contact,
			Location:  d.Location,
		})
	}
	return resp
}
